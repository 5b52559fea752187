package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestCartState_WithAdded_MergesSameID(t *testing.T) {
	s := model.EmptyCart().
		WithAdded(product("p1", 100), 2).
		WithAdded(product("p1", 100), 3)

	require.Len(t, s.Items, 1)
	assert.Equal(t, int64(5), s.Items[0].Quantity)
	assert.Equal(t, int64(5), s.ItemCount)
	assert.Equal(t, "500", s.Total.String())
}

func TestCartState_WithAdded_KeepsInsertionOrder(t *testing.T) {
	s := model.EmptyCart().
		WithAdded(product("b", 1), 1).
		WithAdded(product("a", 1), 1).
		WithAdded(product("b", 1), 1)

	require.Len(t, s.Items, 2)
	assert.Equal(t, "b", s.Items[0].ID)
	assert.Equal(t, "a", s.Items[1].ID)
}

func TestCartState_WithAdded_DoesNotMutateReceiver(t *testing.T) {
	before := model.EmptyCart().WithAdded(product("p1", 10), 1)
	_ = before.WithAdded(product("p1", 10), 4)

	assert.Equal(t, int64(1), before.Items[0].Quantity)
	assert.Equal(t, "10", before.Total.String())
}

func TestCartState_WithQuantity(t *testing.T) {
	base := model.EmptyCart().WithAdded(product("p1", 100), 2)

	t.Run("sets exactly", func(t *testing.T) {
		s := base.WithQuantity("p1", 7)
		assert.Equal(t, int64(7), s.Items[0].Quantity)
		assert.Equal(t, "700", s.Total.String())
	})

	t.Run("zero removes", func(t *testing.T) {
		s := base.WithQuantity("p1", 0)
		assert.Empty(t, s.Items)
		assert.Equal(t, int64(0), s.ItemCount)
	})

	t.Run("negative removes", func(t *testing.T) {
		s := base.WithQuantity("p1", -3)
		assert.Equal(t, -1, s.IndexOf("p1"))
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		s := base.WithQuantity("nope", 9)
		assert.Equal(t, base.Items, s.Items)
		assert.Equal(t, base.Total.String(), s.Total.String())
	})
}

func TestCartState_WithRemoved_AbsentIDLeavesItems(t *testing.T) {
	base := model.EmptyCart().WithAdded(product("p1", 5), 1).WithAdded(product("p2", 7), 2)

	s := base.WithRemoved("missing")

	assert.Equal(t, base.Items, s.Items)
	assert.Equal(t, "19", s.Total.String())
	assert.Equal(t, int64(3), s.ItemCount)
}

func TestCartState_WithoutLines(t *testing.T) {
	s := model.EmptyCart().WithAdded(product("p1", 10), 2).WithAdded(product("p2", 5), 1)
	ordered := s.Items
	s = s.WithAdded(product("p2", 5), 2).WithAdded(product("p3", 1), 1)

	got := s.WithoutLines(ordered)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "p2", got.Items[0].ID)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.Equal(t, "p3", got.Items[1].ID)
	assert.Equal(t, int64(3), got.ItemCount)
	assert.True(t, decimal.NewFromInt(11).Equal(got.Total))
}

func TestCartState_DecimalTotals(t *testing.T) {
	p := product("p1", 0)
	p.Price = decimal.RequireFromString("19.99")

	s := model.EmptyCart().WithAdded(p, 3)

	assert.Equal(t, "59.97", s.Total.String())
}

func TestNewCartState_NilItems(t *testing.T) {
	s := model.NewCartState(nil)

	assert.NotNil(t, s.Items)
	assert.True(t, s.Total.IsZero())
}

func TestProductSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.ProductSnapshot)
	}{
		{"blank id", func(p *model.ProductSnapshot) { p.ID = "  " }},
		{"blank name", func(p *model.ProductSnapshot) { p.Name = "" }},
		{"blank slug", func(p *model.ProductSnapshot) { p.Slug = "" }},
		{"negative price", func(p *model.ProductSnapshot) { p.Price = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := product("p1", 10)
			tt.mutate(&p)
			assert.True(t, errors.Is(p.Validate(), model.ErrInvalidInput))
		})
	}

	t.Run("optional fields may be empty", func(t *testing.T) {
		p := product("p1", 0)
		p.Image, p.Category, p.Brand, p.SKU = "", "", "", ""
		assert.NoError(t, p.Validate())
	})
}

func TestValidateItems(t *testing.T) {
	ok := model.NewCartItem(product("p1", 10), 1)

	assert.NoError(t, model.ValidateItems([]model.CartItem{ok}))

	zero := ok
	zero.Quantity = 0
	assert.ErrorIs(t, model.ValidateItems([]model.CartItem{zero}), model.ErrInvalidQuantity)
	huge := model.NewCartItem(product("p2", 1), model.MaxItemQuantity+1)
	assert.ErrorIs(t, model.ValidateItems([]model.CartItem{huge}), model.ErrInvalidQuantity)

	assert.ErrorIs(t, model.ValidateItems([]model.CartItem{ok, ok}), model.ErrDuplicateItem)
	assert.ErrorIs(t, model.ValidateItems([]model.CartItem{ok, ok}), model.ErrInvalidInput)
}

func TestCartItem_JSONShape(t *testing.T) {
	p := product("p1", 0)
	p.Price = decimal.RequireFromString("12.50")
	item := model.NewCartItem(p, 2)

	b, err := json.Marshal(item)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, 12.5, raw["price"])
	assert.Equal(t, float64(2), raw["quantity"])
	assert.Equal(t, "SKU-p1", raw["sku"])

	var back model.CartItem
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, item.Price.Equal(back.Price))
	assert.Equal(t, item.Quantity, back.Quantity)
	assert.Equal(t, item.Slug, back.Slug)
}

func TestCartItem_UnmarshalRejectsBadPrice(t *testing.T) {
	var item model.CartItem
	err := json.Unmarshal([]byte(`{"id":"p1","price":"abc","quantity":1}`), &item)
	assert.Error(t, err)
}
