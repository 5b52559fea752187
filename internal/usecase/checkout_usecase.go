package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

type CheckoutValidator interface {
	ValidateCheckout(ctx context.Context, in CheckoutInput) error
}

type CheckoutInput struct {
	Shipping       model.ShippingInfo
	PaymentMethod  model.PaymentMethod
	IdempotencyKey string
}

// CheckoutUsecase はカートの中身を外部の注文APIへ送る。
// 注文が作れたら送った明細をカートから消し、失敗したらカートはそのまま残す。
type CheckoutUsecase struct {
	sessions  *CartSessions
	orders    repo.OrderGateway
	validator CheckoutValidator
	log       *zap.Logger
}

func NewCheckoutUsecase(sessions *CartSessions, orders repo.OrderGateway, validator CheckoutValidator, log *zap.Logger) *CheckoutUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutUsecase{
		sessions:  sessions,
		orders:    orders,
		validator: validator,
		log:       log,
	}
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sessionID string, in CheckoutInput) (model.Order, error) {
	if err := u.validator.ValidateCheckout(ctx, in); err != nil {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := u.sessions.Open(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid session")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	order, err := u.placeOrder(ctx, store, in)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, ErrEmptyCart.Error())
		}
		u.log.Error("create order failed", zap.String("session", sessionID), zap.Error(err))
		return model.Order{}, NewHTTPError(http.StatusBadGateway, "order service unavailable")
	}

	u.log.Info("order placed",
		zap.String("session", sessionID),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}

func (u *CheckoutUsecase) placeOrder(ctx context.Context, store *CartStore, in CheckoutInput) (model.Order, error) {
	cart := store.Snapshot()
	if len(cart.Items) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	req := model.NewCreateOrderRequest(cart, in.Shipping, in.PaymentMethod)
	order, err := u.orders.CreateOrder(ctx, req, strings.TrimSpace(in.IdempotencyKey))
	if err != nil {
		return model.Order{}, err
	}

	// 送った明細だけを消す
	store.RemoveOrdered(ctx, cart.Items)
	return order, nil
}
