package handler

import (
	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// --- Request types ---
//
// Handlers never read raw untyped input: each mutating endpoint binds into
// one of these structs and runs it through the validation pipeline before
// any side-effecting logic. A role field is deliberately absent everywhere;
// role is never client-settable.

type registerRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"required,min=2"`
	Email     string `json:"email"      form:"email"      validate:"required,email"`
	Password  string `json:"password"   form:"password"   validate:"required,strongpw"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type updateAccountRequest struct {
	AccountID string `json:"account_id" form:"account_id" validate:"required"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"required,min=2"`
	Email     string `json:"email"      form:"email"      validate:"required,email"`
}

type updatePasswordRequest struct {
	AccountID string `json:"account_id" form:"account_id" validate:"required"`
	Password  string `json:"password"   form:"password"   validate:"required,strongpw"`
}

// --- Response types ---

// viewOutcome tells the rendering collaborator which view to draw and with
// what. View rendering itself is outside this service; the envelope is the
// whole contract.
type viewOutcome struct {
	View   string              `json:"view"`
	Notice string              `json:"notice,omitempty"`
	Errors []domain.FieldError `json:"errors,omitempty"`
	Data   any                 `json:"data,omitempty"`
}

// accountResponse is the client-safe projection of an account. There is no
// field for the password hash on purpose.
type accountResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

func claimsResponse(cs domain.ClaimSet) accountResponse {
	return accountResponse{
		ID:        cs.AccountID,
		FirstName: cs.FirstName,
		LastName:  cs.LastName,
		Email:     cs.Email,
		Role:      cs.Role,
	}
}
