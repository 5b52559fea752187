package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func product(id string, price int64) model.ProductSnapshot {
	return model.ProductSnapshot{
		ID:       id,
		Name:     "Product " + id,
		Slug:     "product-" + id,
		Price:    decimal.NewFromInt(price),
		Image:    "https://cdn.example.com/" + id + ".jpg",
		Category: "phones",
		Brand:    "acme",
		SKU:      "SKU-" + id,
	}
}

// 永続側・セッション側のメモリストア
func memoryBackends() (*infraRepo.KVMemoryStore, *infraRepo.KVMemoryStore, []repo.NamedStore) {
	durable := infraRepo.NewKVMemoryStore()
	ephemeral := infraRepo.NewKVMemoryStore()
	return durable, ephemeral, []repo.NamedStore{
		{Name: "durable", Store: durable},
		{Name: "ephemeral", Store: ephemeral},
	}
}

// =====================
// Mocks
// =====================

type KVStoreMock struct{ mock.Mock }

func (m *KVStoreMock) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KVStoreMock) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KVStoreMock) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type OrderGatewayMock struct{ mock.Mock }

func (m *OrderGatewayMock) CreateOrder(ctx context.Context, req model.CreateOrderRequest, idempotencyKey string) (model.Order, error) {
	args := m.Called(ctx, req, idempotencyKey)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type CheckoutValidatorMock struct{ mock.Mock }

func (m *CheckoutValidatorMock) ValidateCheckout(ctx context.Context, in usecase.CheckoutInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
