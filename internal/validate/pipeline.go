// Package validate is the per-endpoint validation pipeline. Every mutating
// request passes a structural check (format, length, ranges) and optional
// business rules (email uniqueness against the account store) before its
// handler runs. Failures are collected, not fail-fast, so the caller can
// render every problem at once.
package validate

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// Rule is a business check evaluated after the structural pass. It returns
// nil when the rule holds.
type Rule func(ctx context.Context) *domain.FieldError

// Pipeline wraps go-playground/validator plus the account store needed by
// business rules. Safe for concurrent use.
type Pipeline struct {
	v        *validator.Validate
	accounts emailLookup
}

// emailLookup is the slice of the account repository the pipeline needs.
type emailLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

func New(accounts emailLookup) *Pipeline {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// strongpw mirrors the registration policy: 12+ characters with at
	// least one upper, lower, digit, and symbol.
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return &Pipeline{v: v, accounts: accounts}
}

// Check runs the structural rules declared on req, then each business rule,
// and returns all failures together. A nil return means the request may
// proceed unchanged.
func (p *Pipeline) Check(ctx context.Context, req any, rules ...Rule) *domain.ValidationError {
	var fields []domain.FieldError

	if err := p.v.Struct(req); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			fields = append(fields, domain.FieldError{Field: "request", Message: "invalid payload"})
		} else {
			for _, fe := range ve {
				fields = append(fields, fieldError(fe))
			}
		}
	}

	for _, rule := range rules {
		if fe := rule(ctx); fe != nil {
			fields = append(fields, *fe)
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// EmailAvailable fails when any account already uses the email. Used by
// registration. The storage unique index remains the authoritative guard
// against a race between this check and the write.
func (p *Pipeline) EmailAvailable(email string) Rule {
	return func(ctx context.Context) *domain.FieldError {
		normalized := domain.NormalizeEmail(email)
		_, err := p.accounts.FindByEmail(ctx, normalized)
		if err == domain.ErrAccountNotFound {
			return nil
		}
		if err != nil {
			// Store trouble is not the caller's fault; let the write
			// surface it as an infrastructure failure.
			return nil
		}
		return &domain.FieldError{Field: "email", Message: "Email exists. Please log in or use a different email."}
	}
}

// EmailAvailableExcluding fails when a *different* account uses the email.
// Used by profile update so keeping one's own address is not a conflict.
func (p *Pipeline) EmailAvailableExcluding(email, accountID string) Rule {
	return func(ctx context.Context) *domain.FieldError {
		normalized := domain.NormalizeEmail(email)
		existing, err := p.accounts.FindByEmail(ctx, normalized)
		if err != nil {
			return nil
		}
		if existing.ID == accountID {
			return nil
		}
		return &domain.FieldError{Field: "email", Message: "Email already in use."}
	}
}

// StrongPassword reports whether pw meets the account password policy.
func StrongPassword(pw string) bool {
	if len(pw) < 12 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// fieldError converts a single structural failure into the user-facing shape.
func fieldError(fe validator.FieldError) domain.FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.FieldError{Field: field, Message: fmt.Sprintf("Please provide a %s.", strings.ReplaceAll(field, "_", " "))}
	case "email":
		return domain.FieldError{Field: field, Message: "A valid email is required."}
	case "min":
		return domain.FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %s characters.", strings.ReplaceAll(field, "_", " "), fe.Param())}
	case "strongpw":
		return domain.FieldError{Field: field, Message: "Password must be 12+ characters and include upper, lower, number, and special character."}
	default:
		return domain.FieldError{Field: field, Message: fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())}
	}
}
