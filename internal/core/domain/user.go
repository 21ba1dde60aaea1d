package domain

import "time"

// Role is the user profile type. CIDADAO is the default reporter role;
// ADMIN and GESTOR are staff roles with access to status transitions and
// the dashboard.
type Role string

const (
	RoleCidadao Role = "CIDADAO"
	RoleAdmin   Role = "ADMIN"
	RoleGestor  Role = "GESTOR"
)

// IsStaff reports whether the role grants staff capabilities.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleGestor
}

// User models an account as served by the backend. The portal holds a
// read-mostly cached copy inside the session after login; the role is
// immutable from the client's perspective.
type User struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	Tipo        Role      `json:"tipo"`
	Ativo       bool      `json:"ativo"`
	DataCriacao time.Time `json:"dataCriacao"`
}

// UserPatch is a partial update applied to the session's cached user.
// Nil fields are left untouched.
type UserPatch struct {
	Nome  *string
	Email *string
	Ativo *bool
}

// Apply shallow-merges the patch into a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.Nome != nil {
		u.Nome = *p.Nome
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Ativo != nil {
		u.Ativo = *p.Ativo
	}
	return u
}
