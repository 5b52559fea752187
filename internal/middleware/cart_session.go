package middleware

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CartSessionCookie = "cart_session"
	CtxSessionIDKey   = "session_id" // string
)

type SessionOptions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
	Now    func() time.Time
	NewID  func() string
}

func SessionOptionsFromConfig(cfg config.Config) SessionOptions {
	return SessionOptions{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	}
}

// ゲストのカートセッション用ミドルウェア。
// cookieのJWTが無い・不正・期限切れなら新しいセッションIDを発行してcookieに入れる。
func CartSession(opts SessionOptions) echo.MiddlewareFunc {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if ck, err := c.Cookie(CartSessionCookie); err == nil && ck.Value != "" {
				if id, err := ParseSessionToken(ck.Value, opts.Secret, opts.Now()); err == nil {
					sessionID = id
				}
			}

			//無ければ発行
			if sessionID == "" {
				sessionID = opts.NewID()
				now := opts.Now()
				token, err := IssueSessionToken(sessionID, opts.Secret, now, opts.TTL)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
				}
				c.SetCookie(&http.Cookie{
					Name:     CartSessionCookie,
					Value:    token,
					Path:     "/",
					Expires:  now.Add(opts.TTL),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// セッションIDをsubに入れたJWT（HS256）
func IssueSessionToken(sessionID string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// トークンを検証してセッションIDを返す
func ParseSessionToken(raw string, secret []byte, now time.Time) (string, error) {
	//期限はnowで自前チェックする
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return "", errors.New("session token expired")
	}

	//subはuuid
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid sub")
	}
	return claims.Subject, nil
}

// contextからセッションIDを取り出す
func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxSessionIDKey).(string)
	return id, ok && id != ""
}
