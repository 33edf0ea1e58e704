package auth

// Role es el nivel de acceso derivado del código de invitación.
type Role string

const (
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Claims representa la información derivada del código presentado.
// No hay sesiones: se recalcula en cada request.
type Claims struct {
	Role Role
	Code string
}

// CanEdit indica si el rol permite operaciones de escritura.
func (c Claims) CanEdit() bool {
	return c.Role == RoleEditor
}

// RoleResolver resuelve un código de invitación a un rol.
// Devuelve ok=false si el código no es ninguno de los configurados.
type RoleResolver interface {
	Resolve(code string) (Role, bool)
}
