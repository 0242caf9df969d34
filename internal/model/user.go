package model

import "time"

// Role names embedded in access tokens.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User is a row of the `users` table.  The Role column is the single
// source of authorization truth: it is copied into every access token
// as a claim and re-checked on each request, so there is no
// client-held admin state to tamper with.
//
// Fields:
//  ID           – primary key.
//  Email        – unique login email.
//  Name         – display name shown on reviews and bookings.
//  PasswordHash – bcrypt digest of the password.
//  Role         – CUSTOMER or ADMIN.
//  IsActive     – account toggle, inactive users cannot log in.
//  CreatedAt    – row creation time.
//  UpdatedAt    – last modification time.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken is a row of the `refresh_tokens` table.  One row per
// issued session; the raw token value never reaches the database,
// only its SHA-256 digest.
//
// Fields:
//  ID        – primary key.
//  UserID    – owning user.
//  TokenHash – SHA-256 hex digest of the raw token.
//  ExpiresAt – hard expiry, enforced at validation time.
//  RevokedAt – set when the session ends, nil while active.
//  CreatedAt – row creation time.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
