// Package tenant implementa el guard de alcance multi-tenant: toda lectura y
// escritura se filtra por el admin dueño del registro. La identidad se pasa
// como argumento explícito a cada operación; no hay estado ambiente.
package tenant

import "github.com/tu-usuario/despacho-pro/internal/domain/entity"

// Identity identidad del caller autenticado, derivada de los claims del token.
type Identity struct {
	UserID  string
	AdminID string // vacío para admins; id del admin dueño para empleados
	IsSuper bool
}

// IdentityFor construye la identidad a partir de un usuario.
func IdentityFor(u *entity.User) Identity {
	return Identity{UserID: u.ID, AdminID: u.AdminID, IsSuper: u.IsSuper}
}

// Scope predicado tipado de tenant: los repositorios lo componen con sus
// propios filtros en lugar de fusionar fragmentos de query ad hoc.
type Scope struct {
	AdminID string
}

// ScopeFor devuelve el predicado de alcance del caller:
//   - admin (IsSuper): sus propios registros
//   - empleado delegado: los registros de su admin
func ScopeFor(id Identity) Scope {
	return Scope{AdminID: id.owner()}
}

// OwnerForCreation devuelve el admin a estampar en registros nuevos: el id del
// admin dueño para empleados, el propio id para admins.
func OwnerForCreation(id Identity) string {
	if id.AdminID != "" {
		return id.AdminID
	}
	return id.UserID
}

// Authorize indica si el caller puede acceder a un registro con ese dueño.
func Authorize(id Identity, recordAdminID string) bool {
	return recordAdminID != "" && recordAdminID == id.owner()
}

func (id Identity) owner() string {
	if id.IsSuper {
		return id.UserID
	}
	if id.AdminID != "" {
		return id.AdminID
	}
	return id.UserID
}
