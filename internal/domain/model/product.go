package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// 1明細あたりの数量の上限
const MaxItemQuantity int64 = 9999

var (
	// 入力が不正（必須項目なし・負の価格など）
	ErrInvalidInput = errors.New("invalid input")

	// 数量が1未満
	ErrInvalidQuantity = errors.New("invalid quantity")

	// 同じidの明細が2つある
	ErrDuplicateItem = fmt.Errorf("%w: duplicate item id", ErrInvalidInput)
)

// カートに入れる商品の入力。
// カタログ商品のうち、カートが使う項目だけを受け取る。
type ProductSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	SKU      string          `json:"sku"`
}

// 必須チェック
func (p ProductSnapshot) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
