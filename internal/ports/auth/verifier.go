package auth

import "context"

// Claims es lo mínimo que necesitamos del usuario autenticado:
// identidad para atribuir movimientos y ediciones en el audit log.
// Roles/permisos viven fuera de este sistema.
type Claims struct {
	UserID      string
	DisplayName string
}

// AuthVerifier valida un bearer token contra el proveedor de identidad
// del dashboard. Puede ser nil (modo dev: header X-Debug-User-ID).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
