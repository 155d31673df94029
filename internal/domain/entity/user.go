package entity

import "time"

// Roles de usuario. El control de acceso se aplica en la capa HTTP;
// el ledger solo registra el actor como texto.
const (
	RoleIT             = "IT"
	RoleAccounts       = "Accounts"
	RoleInventoryStaff = "InventoryStaff"
	RoleInventoryAdmin = "InventoryAdmin"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleIT, RoleAccounts, RoleInventoryStaff, RoleInventoryAdmin:
		return true
	}
	return false
}

// User cuenta de acceso al sistema.
type User struct {
	UserID       string // USR-0001, generado por secuencia
	Firstname    string
	Lastname     string
	Email        string // único
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
