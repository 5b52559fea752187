package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// チェックアウトの入力を検証
func (v *checkoutValidator) ValidateCheckout(ctx context.Context, in usecase.CheckoutInput) error {
	s := in.Shipping

	// 必須チェック
	required := []struct {
		name  string
		value string
	}{
		{"first_name", s.FirstName},
		{"last_name", s.LastName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", model.ErrInvalidInput, f.name)
		}
	}

	// email形式
	if !isEmailLike(strings.TrimSpace(s.Email)) {
		return fmt.Errorf("%w: invalid email", model.ErrInvalidInput)
	}

	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("%w: invalid payment_method", model.ErrInvalidInput)
	}

	if len(in.IdempotencyKey) > 255 {
		return fmt.Errorf("%w: invalid idempotency key", model.ErrInvalidInput)
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
