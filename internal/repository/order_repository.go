package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 外部の注文APIへの送信だけを約束。
type OrderGateway interface {
	// idempotencyKey は空なら送らない
	CreateOrder(ctx context.Context, req model.CreateOrderRequest, idempotencyKey string) (model.Order, error)
}
