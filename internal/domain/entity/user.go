package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleEmployee   = "employee"
)

// User usuario del sistema. Un admin (IsSuper) es dueño de un tenant; un
// empleado delegado hereda el alcance de su admin vía AdminID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsSuper      bool
	AdminID      string // vacío para admins; id del admin dueño para empleados
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
