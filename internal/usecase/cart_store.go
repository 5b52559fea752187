package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
)

// 状態が変わったときに呼ばれる。
// ストアのロック中に呼ばれるので、中からストアを操作してはいけない。
type CartListener func(ctx context.Context, state model.CartState)

type listenerEntry struct {
	id int
	fn CartListener
}

// CartStore は1つのカートの状態を持つ。
// 状態を変えるのは AddItem / RemoveItem / UpdateQuantity / Clear と、起動時の Load だけ。
// 変更のたびに派生値（合計・個数）を計算し直し、購読者へ呼び出し順に通知する。
type CartStore struct {
	mu        sync.Mutex
	state     model.CartState
	listeners []listenerEntry
	nextID    int
}

func NewCartStore() *CartStore {
	return &CartStore{state: model.EmptyCart()}
}

// 商品を qty 個追加する（同じ商品なら数量を加算）。
// 加算後の数量が MaxItemQuantity を超えるなら ErrInvalidQuantity。
func (s *CartStore) AddItem(ctx context.Context, p model.ProductSnapshot, qty int64) error {
	if qty <= 0 || qty > model.MaxItemQuantity {
		return model.ErrInvalidQuantity
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.QuantityOf(p.ID) > model.MaxItemQuantity-qty {
		return model.ErrInvalidQuantity
	}
	s.apply(ctx, s.state.WithAdded(p, qty))
	return nil
}

// 明細を削除する。無いidは何もしない。
func (s *CartStore) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.state.WithRemoved(id))
}

// 数量を上書きする。0以下なら削除。無いidは何もしない。
// MaxItemQuantity を超える数量は ErrInvalidQuantity。
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, qty int64) error {
	if qty > model.MaxItemQuantity {
		return model.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.state.WithQuantity(id, qty))
	return nil
}

// 空にする
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, model.EmptyCart())
}

// 注文した明細をその数量だけ取り除く（注文中に追加・増量された分は残す）
func (s *CartStore) RemoveOrdered(ctx context.Context, ordered []model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.state.WithoutLines(ordered))
}

// 保存済みの明細で状態を置き換える（起動時の復元用）
func (s *CartStore) Load(ctx context.Context, items []model.CartItem) error {
	if err := model.ValidateItems(items); err != nil {
		return err
	}
	cp := make([]model.CartItem, len(items))
	copy(cp, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, model.NewCartState(cp))
	return nil
}

func (s *CartStore) IsInCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IndexOf(id) >= 0
}

// 数量（無ければ0）
func (s *CartStore) ItemQuantity(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.QuantityOf(id)
}

// 現在の状態のコピー
func (s *CartStore) Snapshot() model.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// 変更通知を登録する。戻り値を呼ぶと解除。
func (s *CartStore) Subscribe(fn CartListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// s.mu を持った状態で呼ぶ
func (s *CartStore) apply(ctx context.Context, next model.CartState) {
	s.state = next
	for _, l := range s.listeners {
		l.fn(ctx, next.Clone())
	}
}
