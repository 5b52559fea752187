package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 全バックエンド共通の保存キー
const CartStorageKey = "cart"

const defaultWriteTimeout = 2 * time.Second

// 起動時の復元結果（ログとテスト用）
type HydrateResult struct {
	Source      string // 値を読んだバックエンド名（無ければ空）
	Items       int
	Corrupt     bool
	Unavailable bool // 全バックエンドの読み込みに失敗した（復元済みにはしない）
}

// CartPersistence はストアの変更を全バックエンドに書き込み、起動時に1度だけ復元する。
// 復元が終わるまでの変更は書き込まない（まだ読んでいない保存値を空で潰さないため）。
type CartPersistence struct {
	store        *CartStore
	backends     []repo.NamedStore
	log          *zap.Logger
	writeTimeout time.Duration

	mu       sync.Mutex
	hydrated bool

	once        sync.Once
	result      HydrateResult
	unsubscribe func()
}

// backends は読み込みの優先順（先頭が永続側）
func NewCartPersistence(store *CartStore, backends []repo.NamedStore, log *zap.Logger, writeTimeout time.Duration) *CartPersistence {
	if log == nil {
		log = zap.NewNop()
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	p := &CartPersistence{
		store:        store,
		backends:     backends,
		log:          log,
		writeTimeout: writeTimeout,
	}
	p.unsubscribe = store.Subscribe(p.onChange)
	return p
}

// 復元済みか
func (p *CartPersistence) Hydrated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hydrated
}

// 購読を解除する（以降の変更は書き込まない）
func (p *CartPersistence) Close() {
	p.unsubscribe()
}

// Hydrate は保存値を読んでストアに戻す。2回目以降は最初の結果を返すだけ。
// 失敗はすべてログに出して「保存値なし」として扱う。
// ただし全バックエンドが読めなかったときは Unavailable を返し、書き込みは止めたままにする。
func (p *CartPersistence) Hydrate(ctx context.Context) HydrateResult {
	p.once.Do(func() {
		p.result = p.hydrate(ctx)
	})
	return p.result
}

func (p *CartPersistence) hydrate(ctx context.Context) HydrateResult {
	// 呼び出し元のキャンセルで読み込みを失敗扱いにしない
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	raw, source, failed := p.readFirst(rctx)
	cancel()

	if source == "" && len(p.backends) > 0 && failed == len(p.backends) {
		p.log.Warn("cart storage unreadable, persistence stays off")
		return HydrateResult{Unavailable: true}
	}
	if source == "" {
		p.markHydrated()
		return HydrateResult{}
	}

	items, err := DecodeCartItems(raw)
	if err != nil {
		p.log.Warn("discarding corrupt cart",
			zap.String("backend", source),
			zap.Error(err),
		)
		p.removeAll(ctx)
		p.markHydrated()
		return HydrateResult{Source: source, Corrupt: true}
	}

	// 以降の変更（Loadを含む）は書き込む
	p.markHydrated()
	if len(items) == 0 {
		return HydrateResult{Source: source}
	}

	// Loadの通知で全バックエンドに書き直す（消えていた側にも戻る）
	if err := p.store.Load(ctx, items); err != nil {
		p.log.Warn("discarding corrupt cart", zap.String("backend", source), zap.Error(err))
		p.removeAll(ctx)
		return HydrateResult{Source: source, Corrupt: true}
	}

	p.log.Debug("cart restored",
		zap.String("backend", source),
		zap.Int("items", len(items)),
	)
	return HydrateResult{Source: source, Items: len(items)}
}

func (p *CartPersistence) markHydrated() {
	p.mu.Lock()
	p.hydrated = true
	p.mu.Unlock()
}

// 先頭から順に読み、最初に値があったものを返す。読めないバックエンドは飛ばして数える。
func (p *CartPersistence) readFirst(ctx context.Context) (string, string, int) {
	failed := 0
	for _, b := range p.backends {
		v, err := b.Store.Get(ctx, CartStorageKey)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			p.log.Warn("cart storage read failed",
				zap.String("backend", b.Name),
				zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)),
			)
			failed++
			continue
		}
		if v == "" {
			continue
		}
		return v, b.Name, failed
	}
	return "", "", failed
}

func (p *CartPersistence) onChange(ctx context.Context, state model.CartState) {
	if !p.Hydrated() {
		return
	}

	value, err := EncodeCartItems(state.Items)
	if err != nil {
		p.log.Error("encode cart", zap.Error(err))
		return
	}
	if err := p.writeAll(ctx, value); err != nil {
		p.log.Warn("cart storage write failed", zap.Error(err))
	}
}

// 全バックエンドに書く。1つが失敗しても残りには書く。
func (p *CartPersistence) writeAll(ctx context.Context, value string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	var errs []error
	for _, b := range p.backends {
		if err := b.Store.Set(ctx, CartStorageKey, value); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, b.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (p *CartPersistence) removeAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	for _, b := range p.backends {
		if err := b.Store.Remove(ctx, CartStorageKey); err != nil {
			p.log.Warn("cart storage remove failed",
				zap.String("backend", b.Name),
				zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)),
			)
		}
	}
}

// 明細だけをJSON配列にする（合計・個数は保存しない）
func EncodeCartItems(items []model.CartItem) (string, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// 保存値を明細に戻す。配列でない・不正な明細・id重複は ErrCorruptPersistedState。
func DecodeCartItems(raw string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPersistedState, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: not an array", ErrCorruptPersistedState)
	}
	if err := model.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPersistedState, err)
	}
	return items, nil
}

// デバッグ表示用：各バックエンドの生の値
type BackendValue struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Present bool   `json:"present"`
	Error   string `json:"error,omitempty"`
}

func InspectBackends(ctx context.Context, backends []repo.NamedStore) []BackendValue {
	out := make([]BackendValue, 0, len(backends))
	for _, b := range backends {
		v, err := b.Store.Get(ctx, CartStorageKey)
		bv := BackendValue{Name: b.Name}
		switch {
		case err == nil:
			bv.Value = v
			bv.Present = true
		case errors.Is(err, repo.ErrNotFound):
		default:
			bv.Error = err.Error()
		}
		out = append(out, bv)
	}
	return out
}
