package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
)

// CartUsecase は /cart の業務ロジックです。
// カートはセッションIDごとに CartSessions から取り出します。
type CartUsecase struct {
	sessions *CartSessions
}

func NewCartUsecase(sessions *CartSessions) *CartUsecase {
	return &CartUsecase{sessions: sessions}
}

// price は追加時点の価格を返します。
type CartItemResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Price     json.Number `json:"price"`
	Image     string      `json:"image"`
	Quantity  int64       `json:"quantity"`
	Category  string      `json:"category"`
	Brand     string      `json:"brand"`
	SKU       string      `json:"sku"`
	LineTotal json.Number `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     json.Number        `json:"total"`
	ItemCount int64              `json:"item_count"`
}

type ItemStatusResponse struct {
	ID       string `json:"id"`
	InCart   bool   `json:"in_cart"`
	Quantity int64  `json:"quantity"`
}

type StorageDebugResponse struct {
	SessionID string         `json:"session_id"`
	Backends  []BackendValue `json:"backends"`
}

type AddCartInput struct {
	Product  model.ProductSnapshot
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	return NewCartResponse(store.Snapshot()), nil
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := store.AddItem(ctx, in.Product, in.Quantity); err != nil {
		if errors.Is(err, model.ErrInvalidQuantity) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if errors.Is(err, model.ErrInvalidInput) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return NewCartResponse(store.Snapshot()), nil
}

// 数量変更（0以下は削除）
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, itemID string, qty int64) (CartResponse, error) {
	if strings.TrimSpace(itemID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := store.UpdateQuantity(ctx, itemID, qty); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	return NewCartResponse(store.Snapshot()), nil
}

// 明細削除（無いidでもエラーにしない）
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error) {
	if strings.TrimSpace(itemID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	store.RemoveItem(ctx, itemID)
	return NewCartResponse(store.Snapshot()), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	store.Clear(ctx)
	return NewCartResponse(store.Snapshot()), nil
}

func (u *CartUsecase) GetItemStatus(ctx context.Context, sessionID string, itemID string) (ItemStatusResponse, error) {
	store, err := u.open(ctx, sessionID)
	if err != nil {
		return ItemStatusResponse{}, err
	}
	return ItemStatusResponse{
		ID:       itemID,
		InCart:   store.IsInCart(itemID),
		Quantity: store.ItemQuantity(itemID),
	}, nil
}

// 両バックエンドの保存値をそのまま見せる
func (u *CartUsecase) InspectStorage(ctx context.Context, sessionID string) (StorageDebugResponse, error) {
	backends, err := u.sessions.Inspect(ctx, sessionID)
	if err != nil {
		return StorageDebugResponse{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	return StorageDebugResponse{SessionID: sessionID, Backends: backends}, nil
}

func (u *CartUsecase) open(ctx context.Context, sessionID string) (*CartStore, error) {
	store, err := u.sessions.Open(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid session")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return store, nil
}

func NewCartResponse(s model.CartState) CartResponse {
	items := make([]CartItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, CartItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Slug:      it.Slug,
			Price:     model.Number(it.Price),
			Image:     it.Image,
			Quantity:  it.Quantity,
			Category:  it.Category,
			Brand:     it.Brand,
			SKU:       it.SKU,
			LineTotal: model.Number(it.LineTotal()),
		})
	}
	return CartResponse{
		Items:     items,
		Total:     model.Number(s.Total),
		ItemCount: s.ItemCount,
	}
}
