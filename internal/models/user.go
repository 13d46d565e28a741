package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleOperator UserRole = "OPERATOR"
	RoleQC       UserRole = "QC"

	// RolePacking survives in one legacy schema revision. Deprecated: no
	// route accepts it; kept only so old rows still scan.
	RolePacking UserRole = "PACKING"
)

// User represents an application user stored in the users table. The
// refresh fingerprint is the server-side copy of the current refresh token
// (SHA-256 hex); empty means no active session.
type User struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Email              string    `db:"email" json:"email"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	Role               UserRole  `db:"role" json:"role"`
	RefreshFingerprint *string   `db:"refresh_fingerprint" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// UserInfo is the sanitised user shape returned by the API.
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Info strips credential material from a user record.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
