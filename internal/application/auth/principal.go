package auth

import (
	"fmt"

	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// Principal administrador autenticado junto con las credenciales con las que se
// reenvían sus llamadas al backend y su evaluador de permisos.
type Principal struct {
	Admin        entity.Administrador
	Credenciales entity.Credenciales
	Evaluador    permisos.Evaluador
}

// NuevoPrincipal construye el principal; el evaluador se deriva una sola vez.
func NuevoPrincipal(admin *entity.Administrador, cred entity.Credenciales) *Principal {
	p := &Principal{Credenciales: cred, Evaluador: permisos.NuevoEvaluador(admin)}
	if admin != nil {
		p.Admin = *admin
	}
	return p
}

// Puede es seguro con un principal nil (sin sesión = sin capacidades).
func (p *Principal) Puede(c permisos.Capacidad) bool {
	return p != nil && p.Evaluador.Puede(c)
}

// EsAdministrador informa si el principal tiene el rango de administrador.
func (p *Principal) EsAdministrador() bool {
	return p != nil && p.Evaluador.EsAdministrador()
}

// Exigir devuelve domain.ErrForbidden si el principal no tiene la capacidad.
func (p *Principal) Exigir(c permisos.Capacidad) error {
	if p == nil {
		return domain.ErrSinCredenciales
	}
	if !p.Evaluador.Puede(c) {
		return fmt.Errorf("%w: se requiere el permiso %s", domain.ErrForbidden, c)
	}
	return nil
}

// ExigirAdministrador devuelve domain.ErrForbidden si el principal no es administrador.
func (p *Principal) ExigirAdministrador() error {
	if p == nil {
		return domain.ErrSinCredenciales
	}
	if !p.Evaluador.EsAdministrador() {
		return fmt.Errorf("%w: se requiere el rol administrador", domain.ErrForbidden)
	}
	return nil
}
