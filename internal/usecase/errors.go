package usecase

import (
	"errors"
	"fmt"
)

var (
	// バックエンドの読み書きに失敗（ログに出すだけで呼び出し側には返さない）
	ErrStorageUnavailable = errors.New("storage unavailable")

	// 保存値がカートの明細として読めない
	ErrCorruptPersistedState = errors.New("corrupt persisted state")

	// 空のカートでチェックアウトしようとした
	ErrEmptyCart = errors.New("cart is empty")
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
