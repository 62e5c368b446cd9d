package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleViewer  = "viewer"
)

var (
	AllRoles = []string{RoleAdmin, RoleAnalyst, RoleViewer}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Analyst", Value: RoleAnalyst},
		{Name: "Viewer", Value: RoleViewer},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin analyst viewer"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser NewUser

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	return (*NewUser)(uu).Validate(validate)
}

// Credentials are what the sign-in form submits. Any password is accepted.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}

// Filter holds the users page filters.
type Filter struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "email":
		f.Email = value
	case "role":
		f.Role, err = core.OneOf(key, value, AllRoles)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) Match(u User) bool {
	return core.ContainsFold(u.Email, f.Email) && (f.Role == "" || u.Role == f.Role)
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "email", Label: "Email", Type: core.FieldText},
		{Key: "role", Label: "Role", Type: core.FieldSelect, Options: core.Options(AllRoles...)},
	}
}

var Orderings = map[string]core.Comparator[User]{
	"email":      func(a, b User) int { return core.CompareStrings(a.Email, b.Email) },
	"role":       func(a, b User) int { return core.CompareStrings(a.Role, b.Role) },
	"created_at": func(a, b User) int { return a.CreatedAt.Compare(b.CreatedAt) },
}
