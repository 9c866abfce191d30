package models

import "time"

// AccountStatus is the lifecycle state of an account. Only active accounts
// may log in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
	StatusBanned   AccountStatus = "banned"
)

// Valid reports whether s is one of the known statuses.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBanned:
		return true
	}
	return false
}

// Account represents a registered identity with credentials and profile data.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// ID is the server-assigned unique identifier of the account.
	ID int64 `json:"id"`

	// Email is the unique login key. It is stored trimmed and lower-cased.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the most recently accepted password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	Status AccountStatus `json:"status"`

	Profile

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Files holds the attachments owned by the account. It is populated only
	// by single-account reads.
	Files []FileAttachment `json:"files,omitempty"`
}

// Profile holds descriptive, non-credential account fields.
type Profile struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
	CustomerID  string `json:"customerId"`

	// JoinDate is a calendar date in YYYY-MM-DD form.
	JoinDate string `json:"joinDate"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "users"
}

// IsActive reports whether the account is allowed to log in.
func (a Account) IsActive() bool {
	return a.Status == StatusActive
}
