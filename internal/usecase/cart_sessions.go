package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

type CartSessionsConfig struct {
	IdleTTL       time.Duration // これより長く触られていないカートはメモリから外す
	SweepInterval time.Duration // 掃除の最短間隔
	WriteTimeout  time.Duration
	Now           func() time.Time
}

type cartSession struct {
	store    *CartStore
	bridge   *CartPersistence
	ready    chan struct{}
	lastUsed time.Time
}

// CartSessions はセッションIDごとに CartStore と CartPersistence を1組ずつ持つ。
// バックエンドはセッションIDで名前空間を分けるので、保存キーは常に CartStorageKey のまま。
// メモリから外したカートも保存値は残るので、次の Open で復元される。
// 外した後も古い CartStore を持っている呼び出し側はそのまま書き込むので、新しい方と後勝ちになる。
type CartSessions struct {
	backends []repo.NamedStore
	log      *zap.Logger
	cfg      CartSessionsConfig

	mu        sync.Mutex
	sessions  map[string]*cartSession
	lastSweep time.Time
}

func NewCartSessions(backends []repo.NamedStore, log *zap.Logger, cfg CartSessionsConfig) *CartSessions {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &CartSessions{
		backends: backends,
		log:      log,
		cfg:      cfg,
		sessions: make(map[string]*cartSession),
	}
}

// Open はセッションのカートを返す。初回は保存値から復元してから返す。
// 同じセッションを同時に開いても復元は1回だけ。
func (m *CartSessions) Open(ctx context.Context, sessionID string) (*CartStore, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", model.ErrInvalidInput)
	}

	now := m.cfg.Now()

	m.mu.Lock()
	m.sweepLocked(now)

	s, ok := m.sessions[sessionID]
	if ok {
		s.lastUsed = now
		m.mu.Unlock()

		select {
		case <-s.ready:
			return s.store, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	store := NewCartStore()
	s = &cartSession{
		store:    store,
		bridge:   NewCartPersistence(store, m.namespaced(sessionID), m.log.With(zap.String("session", sessionID)), m.cfg.WriteTimeout),
		ready:    make(chan struct{}),
		lastUsed: now,
	}
	m.sessions[sessionID] = s
	m.mu.Unlock()

	res := s.bridge.Hydrate(ctx)
	if res.Unavailable {
		// 復元できていないカートは使い回さない。次の Open で読み直す。
		m.mu.Lock()
		if m.sessions[sessionID] == s {
			delete(m.sessions, sessionID)
		}
		m.mu.Unlock()
		s.bridge.Close()
	}
	close(s.ready)

	if res.Corrupt {
		m.log.Warn("cart session started empty after corrupt data", zap.String("session", sessionID))
	}
	return s.store, nil
}

// Inspect は各バックエンドに保存されている生の値を返す（デバッグ用）
func (m *CartSessions) Inspect(ctx context.Context, sessionID string) ([]BackendValue, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", model.ErrInvalidInput)
	}
	return InspectBackends(ctx, m.namespaced(sessionID)), nil
}

// メモリ上のセッション数
func (m *CartSessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *CartSessions) namespaced(sessionID string) []repo.NamedStore {
	out := make([]repo.NamedStore, 0, len(m.backends))
	for _, b := range m.backends {
		out = append(out, repo.NamedStore{
			Name:  b.Name,
			Store: repo.NewNamespacedStore(b.Store, sessionID),
		})
	}
	return out
}

// m.mu を持った状態で呼ぶ
func (m *CartSessions) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.cfg.SweepInterval {
		return
	}
	m.lastSweep = now

	for id, s := range m.sessions {
		select {
		case <-s.ready:
		default:
			// 復元中は外さない
			continue
		}
		if now.Sub(s.lastUsed) > m.cfg.IdleTTL {
			delete(m.sessions, id)
			m.log.Debug("cart session evicted", zap.String("session", id))
		}
	}
}
