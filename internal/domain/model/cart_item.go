package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// カートの明細
// 追加時点の商品情報と価格をコピーして持つ（カタログとは連動しない）。
type CartItem struct {
	ID       string
	Name     string
	Slug     string
	Price    decimal.Decimal
	Image    string
	Quantity int64
	Category string
	Brand    string
	SKU      string
}

func NewCartItem(p ProductSnapshot, qty int64) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: qty,
		Category: p.Category,
		Brand:    p.Brand,
		SKU:      p.SKU,
	}
}

// 明細の小計
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// 保存値から戻した明細のチェック
func (i CartItem) Validate() error {
	if i.Quantity < 1 || i.Quantity > MaxItemQuantity {
		return fmt.Errorf("%w: item %q has quantity %d", ErrInvalidQuantity, i.ID, i.Quantity)
	}
	return ProductSnapshot{
		ID:    i.ID,
		Name:  i.Name,
		Slug:  i.Slug,
		Price: i.Price,
	}.Validate()
}

// JSON上の形。price は数値、quantity は整数で出す。
type cartItemJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Quantity int64       `json:"quantity"`
	Category string      `json:"category"`
	Brand    string      `json:"brand"`
	SKU      string      `json:"sku"`
}

func (i CartItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartItemJSON{
		ID:       i.ID,
		Name:     i.Name,
		Slug:     i.Slug,
		Price:    Number(i.Price),
		Image:    i.Image,
		Quantity: i.Quantity,
		Category: i.Category,
		Brand:    i.Brand,
		SKU:      i.SKU,
	})
}

func (i *CartItem) UnmarshalJSON(data []byte) error {
	var raw cartItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	price := decimal.Zero
	if raw.Price != "" {
		p, err := decimal.NewFromString(raw.Price.String())
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		price = p
	}

	*i = CartItem{
		ID:       raw.ID,
		Name:     raw.Name,
		Slug:     raw.Slug,
		Price:    price,
		Image:    raw.Image,
		Quantity: raw.Quantity,
		Category: raw.Category,
		Brand:    raw.Brand,
		SKU:      raw.SKU,
	}
	return nil
}
