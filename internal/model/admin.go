package model

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type Admin struct {
	BaseModel
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

func (a *Admin) IsSuperAdmin() bool {
	return a != nil && a.Role == RoleSuperAdmin
}
