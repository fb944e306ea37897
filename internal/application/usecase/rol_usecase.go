package usecase

import (
	"context"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// RolUseCase consulta del catálogo de roles. Solo rango administrador.
type RolUseCase struct {
	backend ports.RolesBackend
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(backend ports.RolesBackend) *RolUseCase {
	return &RolUseCase{backend: backend}
}

// Listar devuelve todos los roles.
func (uc *RolUseCase) Listar(ctx context.Context, p *auth.Principal) ([]entity.Rol, error) {
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	roles, err := uc.backend.ListarRoles(ctx, p.Credenciales)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []entity.Rol{}
	}
	return roles, nil
}

// Obtener devuelve un rol por ID.
func (uc *RolUseCase) Obtener(ctx context.Context, p *auth.Principal, id int64) (*entity.Rol, error) {
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	return uc.backend.ObtenerRol(ctx, p.Credenciales, id)
}

// Estadisticas distribución de administradores por rol.
func (uc *RolUseCase) Estadisticas(ctx context.Context, p *auth.Principal) (*dto.EstadisticasRoles, error) {
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	return uc.backend.EstadisticasRoles(ctx, p.Credenciales)
}
