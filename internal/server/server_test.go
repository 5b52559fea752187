package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/handler"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_Routes(t *testing.T) {
	sessions := usecase.NewCartSessions([]repo.NamedStore{
		{Name: "durable", Store: infraRepo.NewKVMemoryStore()},
	}, zap.NewNop(), usecase.CartSessionsConfig{})

	e := server.New(zap.NewNop(), server.Handlers{
		Cart:     handler.NewCartHandler(usecase.NewCartUsecase(sessions)),
		Checkout: handler.NewCheckoutHandler(usecase.NewCheckoutUsecase(sessions, nil, validator.NewCheckoutValidator(), nil)),
	}, middleware.SessionOptions{Secret: []byte("s"), TTL: time.Hour})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 1)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
