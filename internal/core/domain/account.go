package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountNotFound = errors.New("account not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrNotAuthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrHashing = errors.New("password hashing failed")

// Token verification failures. Callers treat all three as "not
// authenticated"; they stay distinct for diagnostics and metrics.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenUnknown = errors.New("token unverifiable")

// Account is the identity record. PasswordHash never reaches a client
// surface and is never embedded in a token.
type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleEmployee || role == RoleAdmin
}

// NormalizeEmail lowercases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ClaimSet is the minimal identity carried by a bearer token and mirrored
// into the session store. It is exactly the non-secret Account fields.
type ClaimSet struct {
	AccountID string `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ClaimsFor builds the claim set for an account.
func ClaimsFor(a *Account) ClaimSet {
	return ClaimSet{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// CanActOn reports whether the caller may mutate the account with the given
// id: the subject account itself, or an administrator.
func (c ClaimSet) CanActOn(accountID string) bool {
	return c.AccountID == accountID || c.Role == RoleAdmin
}
