package model

import "time"

// User represents an account record as stored in the `users` table.
// Each field corresponds to a column in the database. The json tags are
// omitted here because these structs are used internally by the repository
// layer; handlers define their own response types.
//
// Role and IsSuperAdmin are both authoritative for the highest privilege
// tier: an account is a superadmin when Role is "superadmin" OR the flag is
// set. The flag predates the role column and is still honored everywhere
// the top tier is checked.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address used as the login identifier.
//  Name         – display name shown in the admin panel.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name: "user", "admin" or "superadmin".
//  IsSuperAdmin – independent superadmin flag (see above).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsSuperAdmin bool      // users.is_super_admin
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role name constants matching the users.role column values.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)
