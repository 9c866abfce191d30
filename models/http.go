package models

import "math"

// RegisterRequest is the body of a registration call.
// Name, Email and Password are required; everything else is optional.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Position    string `json:"position,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	JoinDate    string `json:"joinDate,omitempty"`

	// Status defaults to [StatusActive] when empty.
	Status AccountStatus `json:"status,omitempty"`
}

// LoginRequest carries the credentials of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a password reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdate represents a partial update of non-credential account
// fields. Only non-nil fields are written.
type ProfileUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Location    *string        `json:"location,omitempty"`
	CompanyName *string        `json:"companyName,omitempty"`
	Position    *string        `json:"position,omitempty"`
	CustomerID  *string        `json:"customerId,omitempty"`
	JoinDate    *string        `json:"joinDate,omitempty"`
	Status      *AccountStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil && u.CompanyName == nil &&
		u.Position == nil && u.CustomerID == nil && u.JoinDate == nil && u.Status == nil
}

// AccountFilter narrows an account listing. Text fields match partially and
// case-insensitively; JoinDate and Status match exactly. Empty fields are
// ignored.
type AccountFilter struct {
	Name        string
	Email       string
	Phone       string
	Location    string
	CompanyName string
	Position    string
	CustomerID  string
	JoinDate    string
	Status      AccountStatus
}

// Paging defaults applied by [PageRequest.WithDefaults].
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit inside the int32 range of a SQL OFFSET.
	MaxPage = math.MaxInt32 / MaxLimit
)

// PageRequest selects a 1-based page of a listing.
type PageRequest struct {
	Page  int
	Limit int
}

// WithDefaults fills a zero Page or Limit with the defaults and caps Limit
// at MaxLimit. Negative values are left for validation to reject.
func (p PageRequest) WithDefaults() PageRequest {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}

// Offset returns the number of rows to skip for the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
