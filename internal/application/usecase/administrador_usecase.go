package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// Acciones de bitácora propias de la administración de cuentas (no son capacidades de rol).
const (
	accionAdminCrear      permisos.Capacidad = "administradores.crear"
	accionAdminEditar     permisos.Capacidad = "administradores.editar"
	accionAdminEliminar   permisos.Capacidad = "administradores.eliminar"
	accionAdminAsignarRol permisos.Capacidad = "administradores.asignar_rol"
)

// AdministradorUseCase gestión de cuentas de administrador. Solo rango administrador.
type AdministradorUseCase struct {
	backend  ports.AdministradoresBackend
	bitacora *bitacora.BitacoraUseCase
}

// NewAdministradorUseCase construye el caso de uso.
func NewAdministradorUseCase(backend ports.AdministradoresBackend, bit *bitacora.BitacoraUseCase) *AdministradorUseCase {
	return &AdministradorUseCase{backend: backend, bitacora: bit}
}

// Listar lista todos los administradores.
func (uc *AdministradorUseCase) Listar(ctx context.Context, p *auth.Principal) ([]entity.Administrador, error) {
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	out, err := uc.backend.ListarAdministradores(ctx, p.Credenciales)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Administrador{}
	}
	return out, nil
}

// Obtener obtiene un administrador por ID.
func (uc *AdministradorUseCase) Obtener(ctx context.Context, p *auth.Principal, id int64) (*entity.Administrador, error) {
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	return uc.backend.ObtenerAdministrador(ctx, p.Credenciales, id)
}

func validarUsuario(u string) error {
	if utf8.RuneCountInString(u) < 3 {
		return fmt.Errorf("%w: el usuario debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	return nil
}

func validarPassword(pw string) error {
	if utf8.RuneCountInString(pw) < 6 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	return nil
}

// Crear crea una cuenta de administrador, opcionalmente con rol.
func (uc *AdministradorUseCase) Crear(ctx context.Context, p *auth.Principal, in dto.CrearAdministradorRequest) (a *entity.Administrador, err error) {
	in.Usuario = strings.TrimSpace(in.Usuario)
	defer func() {
		id := ""
		if a != nil {
			id = strconv.FormatInt(a.ID, 10)
		}
		uc.bitacora.Registrar(ctx, p, accionAdminCrear, "administrador", id, in.Usuario, err)
	}()
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	if err := validarUsuario(in.Usuario); err != nil {
		return nil, err
	}
	if err := validarPassword(in.Password); err != nil {
		return nil, err
	}
	return uc.backend.CrearAdministrador(ctx, p.Credenciales, in)
}

// Actualizar modifica usuario, contraseña o rol.
func (uc *AdministradorUseCase) Actualizar(ctx context.Context, p *auth.Principal, id int64, in dto.ActualizarAdministradorRequest) (a *entity.Administrador, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, accionAdminEditar, "administrador", strconv.FormatInt(id, 10), "", err)
	}()
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	if in.Usuario != nil {
		u := strings.TrimSpace(*in.Usuario)
		if err := validarUsuario(u); err != nil {
			return nil, err
		}
		in.Usuario = &u
	}
	if in.Password != nil {
		if err := validarPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	if in.Usuario == nil && in.Password == nil && in.RolID == nil {
		return nil, fmt.Errorf("%w: no hay cambios que aplicar", domain.ErrInvalidInput)
	}
	return uc.backend.ActualizarAdministrador(ctx, p.Credenciales, id, in)
}

// Eliminar borra una cuenta. Un administrador no puede eliminarse a sí mismo.
func (uc *AdministradorUseCase) Eliminar(ctx context.Context, p *auth.Principal, id int64) (err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, accionAdminEliminar, "administrador", strconv.FormatInt(id, 10), "", err)
	}()
	if err := p.ExigirAdministrador(); err != nil {
		return err
	}
	if id == p.Admin.ID {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta", domain.ErrForbidden)
	}
	return uc.backend.EliminarAdministrador(ctx, p.Credenciales, id)
}

// AsignarRol asigna un rol; rolID nil lo quita (la cuenta queda sin capacidades).
func (uc *AdministradorUseCase) AsignarRol(ctx context.Context, p *auth.Principal, id int64, rolID *int64) (a *entity.Administrador, err error) {
	detalle := "rol_id=null"
	if rolID != nil {
		detalle = "rol_id=" + strconv.FormatInt(*rolID, 10)
	}
	defer func() {
		uc.bitacora.Registrar(ctx, p, accionAdminAsignarRol, "administrador", strconv.FormatInt(id, 10), detalle, err)
	}()
	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	if rolID != nil && *rolID <= 0 {
		return nil, fmt.Errorf("%w: rol_id inválido", domain.ErrInvalidInput)
	}
	return uc.backend.AsignarRol(ctx, p.Credenciales, id, rolID)
}
