package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
// ADMIN manages the catalogue, STAFF operates the door (check-in) and
// CUSTOMER is the default for self-registered and walk-up accounts.
const (
	RoleAdmin    = "ADMIN"
	RoleStaff    = "STAFF"
	RoleCustomer = "CUSTOMER"
)

// User represents an application user record as stored in the `users`
// table. Purchaser identities created implicitly during ticket issuance
// are ordinary users with the CUSTOMER role; FirstName, LastName and
// Phone carry the customer details captured at the box office.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (lower-cased).
//  PasswordHash – bcrypt hashed password.
//  FirstName    – given name (may be empty for legacy rows).
//  LastName     – family name (may be empty for legacy rows).
//  Phone        – contact phone number (optional).
//  Role         – role name (ADMIN, STAFF or CUSTOMER).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`             // users.id
	Email        string    `json:"email"`          // users.email
	PasswordHash string    `json:"-"`              // users.password_hash (never serialized)
	FirstName    string    `json:"first_name"`     // users.first_name
	LastName     string    `json:"last_name"`      // users.last_name
	Phone        string    `json:"phone"`          // users.phone
	Role         string    `json:"role"`           // users.role
	IsActive     bool      `json:"is_active"`      // users.is_active
	CreatedAt    time.Time `json:"created_at"`     // users.created_at
	UpdatedAt    time.Time `json:"updated_at"`     // users.updated_at
}

// FullName joins first and last name, trimming when either is missing.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
