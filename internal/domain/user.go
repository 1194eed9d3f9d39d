package domain

// Role values as stored by the backend in tipo_usuario.
const (
	RoleCustomer = "cliente"
	RoleAdmin    = "admin"
	RoleCourier  = "entregador"
)

// ValidRoles returns the set of valid user roles.
func ValidRoles() []string {
	return []string{RoleCustomer, RoleAdmin, RoleCourier}
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// User is the profile cached locally after login. JSON tags follow the
// backend wire format.
type User struct {
	ID     int    `json:"id_usuario"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Role   string `json:"tipo_usuario"`
	TaxID  string `json:"cpf,omitempty"`
	Phone  string `json:"telefone,omitempty"`
	Active bool   `json:"ativo"`
}
