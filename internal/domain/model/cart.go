package model

import "github.com/shopspring/decimal"

// カート全体の状態
// Total と ItemCount は Items から計算する派生値で、単独では更新しない。
type CartState struct {
	Items     []CartItem
	Total     decimal.Decimal
	ItemCount int64
}

// 空のカート
func EmptyCart() CartState {
	return CartState{
		Items:     []CartItem{},
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// Items から派生値を作り直したCartStateを返す。
func NewCartState(items []CartItem) CartState {
	s := CartState{Items: items}
	if s.Items == nil {
		s.Items = []CartItem{}
	}
	s.recalculate()
	return s
}

func (s *CartState) recalculate() {
	total := decimal.Zero
	var count int64
	for _, it := range s.Items {
		total = total.Add(it.LineTotal())
		count += it.Quantity
	}
	s.Total = total
	s.ItemCount = count
}

// idの明細の位置（無ければ -1）
func (s CartState) IndexOf(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// idの数量（無ければ0）
func (s CartState) QuantityOf(id string) int64 {
	if i := s.IndexOf(id); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// 明細をコピーして返す（呼び出し側が書き換えても元の状態は変わらない）
func (s CartState) Clone() CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, Total: s.Total, ItemCount: s.ItemCount}
}

// 商品を追加する。同じidがあれば数量を加算、無ければ末尾に追加。
func (s CartState) WithAdded(p ProductSnapshot, qty int64) CartState {
	next := s.Clone()
	if i := next.IndexOf(p.ID); i >= 0 {
		next.Items[i].Quantity += qty
	} else {
		next.Items = append(next.Items, NewCartItem(p, qty))
	}
	next.recalculate()
	return next
}

// 明細を削除する。無いidなら何もしない。
func (s CartState) WithRemoved(id string) CartState {
	next := CartState{Items: make([]CartItem, 0, len(s.Items))}
	for _, it := range s.Items {
		if it.ID != id {
			next.Items = append(next.Items, it)
		}
	}
	next.recalculate()
	return next
}

// 数量を上書きする。0以下は削除と同じ。無いidなら何もしない。
func (s CartState) WithQuantity(id string, qty int64) CartState {
	if qty <= 0 {
		return s.WithRemoved(id)
	}
	next := s.Clone()
	if i := next.IndexOf(id); i >= 0 {
		next.Items[i].Quantity = qty
	}
	next.recalculate()
	return next
}

// 注文済みの明細を差し引く。注文後に増えた分や追加された商品は残る。
func (s CartState) WithoutLines(ordered []CartItem) CartState {
	next := s
	for _, o := range ordered {
		if q := next.QuantityOf(o.ID); q > 0 {
			next = next.WithQuantity(o.ID, q-o.Quantity)
		}
	}
	next = next.Clone()
	next.recalculate()
	return next
}

// 保存値から戻した明細を検証する（不正値・id重複はエラー）
func ValidateItems(items []CartItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, ok := seen[it.ID]; ok {
			return ErrDuplicateItem
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
