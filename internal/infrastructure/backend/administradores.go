package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// ListarRoles GET /api/roles.
func (c *Client) ListarRoles(ctx context.Context, cred entity.Credenciales) ([]entity.Rol, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/roles",
		cred:     &cred,
		fallback: "Error al obtener roles",
	})
	if err != nil {
		return nil, err
	}
	roles := []entity.Rol{}
	if err := extraer(raw, "roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ObtenerRol GET /api/roles/:id.
func (c *Client) ObtenerRol(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Rol, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     ruta("/api/roles/%d", id),
		cred:     &cred,
		fallback: "Error al obtener rol",
		mensajes: map[int]string{http.StatusNotFound: "Rol no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	var rol entity.Rol
	if err := extraer(raw, "rol", &rol); err != nil {
		return nil, err
	}
	return &rol, nil
}

// EstadisticasRoles GET /api/roles/stats.
func (c *Client) EstadisticasRoles(ctx context.Context, cred entity.Credenciales) (*dto.EstadisticasRoles, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/roles/stats",
		cred:     &cred,
		fallback: "Error al obtener estadísticas de roles",
	})
	if err != nil {
		return nil, err
	}
	var out dto.EstadisticasRoles
	if err := extraer(raw, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListarAdministradores GET /api/administradores/admins.
func (c *Client) ListarAdministradores(ctx context.Context, cred entity.Credenciales) ([]entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/administradores/admins",
		cred:     &cred,
		fallback: "Error al obtener administradores",
	})
	if err != nil {
		return nil, err
	}
	admins := []entity.Administrador{}
	if err := extraer(raw, "administradores", &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// ObtenerAdministrador GET /api/administradores/:id.
func (c *Client) ObtenerAdministrador(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     ruta("/api/administradores/%d", id),
		cred:     &cred,
		fallback: "Error al obtener administrador",
		mensajes: map[int]string{http.StatusNotFound: "Administrador no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	return decodificarAdmin(raw)
}

// CrearAdministrador POST /api/administradores.
func (c *Client) CrearAdministrador(ctx context.Context, cred entity.Credenciales, in dto.CrearAdministradorRequest) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPost,
		ruta:     "/api/administradores",
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error al crear administrador",
		mensajes: map[int]string{http.StatusConflict: "Ya existe un administrador con ese usuario"},
	})
	if err != nil {
		return nil, err
	}
	return decodificarAdmin(raw)
}

// ActualizarAdministrador PUT /api/administradores/:id.
func (c *Client) ActualizarAdministrador(ctx context.Context, cred entity.Credenciales, id int64, in dto.ActualizarAdministradorRequest) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPut,
		ruta:     ruta("/api/administradores/%d", id),
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error al actualizar administrador",
		mensajes: map[int]string{http.StatusNotFound: "Administrador no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	return decodificarAdmin(raw)
}

// EliminarAdministrador DELETE /api/administradores/:id.
func (c *Client) EliminarAdministrador(ctx context.Context, cred entity.Credenciales, id int64) error {
	_, err := c.hacer(ctx, peticion{
		metodo:   http.MethodDelete,
		ruta:     ruta("/api/administradores/%d", id),
		cred:     &cred,
		fallback: "Error al eliminar administrador",
		mensajes: map[int]string{http.StatusNotFound: "Administrador no encontrado"},
	})
	return err
}

// AsignarRol PUT /api/administradores/:id/rol con {rol_id} (null quita el rol).
func (c *Client) AsignarRol(ctx context.Context, cred entity.Credenciales, id int64, rolID *int64) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPut,
		ruta:     ruta("/api/administradores/%d/rol", id),
		cuerpo:   dto.AsignarRolRequest{RolID: rolID},
		cred:     &cred,
		fallback: "Error al asignar rol",
	})
	if err != nil {
		return nil, err
	}
	return decodificarAdmin(raw)
}

func decodificarAdmin(raw []byte) (*entity.Administrador, error) {
	var admin entity.Administrador
	if err := extraer(raw, "admin", &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
