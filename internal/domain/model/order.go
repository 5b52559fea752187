package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCOD         PaymentMethod = "cod"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCard        PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodMobileMoney, PaymentMethodCard:
		return true
	}
	return false
}

// 配送先（チェックアウトフォームの入力）
type ShippingInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

// 注文APIに送る明細
type OrderLine struct {
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	ProductSKU  string      `json:"product_sku"`
	Price       json.Number `json:"price"`
	Quantity    int64       `json:"quantity"`
}

// POST /orders/create/ の本文
type CreateOrderRequest struct {
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	ShippingAddress string        `json:"shipping_address"`
	City            string        `json:"city"`
	Region          string        `json:"region"`
	PostalCode      string        `json:"postal_code,omitempty"`
	OrderNotes      string        `json:"order_notes,omitempty"`
	TotalAmount     json.Number   `json:"total_amount"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Items           []OrderLine   `json:"items"`
}

// 注文APIが返す注文
type Order struct {
	ID                string      `json:"id"`
	OrderNumber       string      `json:"order_number"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	ShippingAddress   string      `json:"shipping_address"`
	City              string      `json:"city"`
	Region            string      `json:"region"`
	PostalCode        string      `json:"postal_code,omitempty"`
	OrderNotes        string      `json:"order_notes,omitempty"`
	TotalAmount       json.Number `json:"total_amount"`
	ShippingCost      json.Number `json:"shipping_cost,omitempty"`
	TaxAmount         json.Number `json:"tax_amount,omitempty"`
	GrandTotal        json.Number `json:"grand_total,omitempty"`
	PaymentMethod     string      `json:"payment_method"`
	PaymentStatus     string      `json:"payment_status"`
	Status            string      `json:"status"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
	TrackingNumber    string      `json:"tracking_number,omitempty"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty"`
	Items             []OrderLine `json:"items"`
}

// skuが空の明細は "N/A" で送る
const UnknownSKU = "N/A"

// カートの中身から注文リクエストを組み立てる
func NewCreateOrderRequest(cart CartState, ship ShippingInfo, method PaymentMethod) CreateOrderRequest {
	lines := make([]OrderLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		sku := it.SKU
		if sku == "" {
			sku = UnknownSKU
		}
		lines = append(lines, OrderLine{
			ProductID:   it.ID,
			ProductName: it.Name,
			ProductSKU:  sku,
			Price:       Number(it.Price),
			Quantity:    it.Quantity,
		})
	}

	return CreateOrderRequest{
		FirstName:       ship.FirstName,
		LastName:        ship.LastName,
		Email:           ship.Email,
		Phone:           ship.Phone,
		ShippingAddress: ship.Address,
		City:            ship.City,
		Region:          ship.Region,
		PostalCode:      ship.PostalCode,
		OrderNotes:      ship.Notes,
		TotalAmount:     Number(cart.Total),
		PaymentMethod:   method,
		Items:           lines,
	}
}

// 金額をJSONの数値として出す
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
