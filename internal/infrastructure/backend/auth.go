package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// VerificarCredenciales POST /api/administradores/verify. Un 401/403 aquí significa
// credenciales incorrectas, no sesión expirada.
func (c *Client) VerificarCredenciales(ctx context.Context, cred entity.Credenciales) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:     http.MethodPost,
		ruta:       "/api/administradores/verify",
		cuerpo:     cred,
		fallback:   "Error en verificación de credenciales",
		clase401:   domain.ErrCredencialesInvalidas,
		mensaje401: "Usuario o contraseña incorrectos",
	})
	if err != nil {
		return nil, err
	}
	var data struct {
		Admin         *entity.Administrador `json:"admin"`
		Authenticated *bool                 `json:"authenticated"`
	}
	if err := extraer(raw, "", &data); err != nil {
		return nil, err
	}
	if data.Admin == nil || (data.Authenticated != nil && !*data.Authenticated) {
		return nil, &domain.BackendError{Clase: domain.ErrCredencialesInvalidas, Mensaje: "Usuario o contraseña incorrectos"}
	}
	return data.Admin, nil
}

// ObtenerPerfil GET /api/administradores/profile (incluye el rol).
func (c *Client) ObtenerPerfil(ctx context.Context, cred entity.Credenciales) (*entity.Administrador, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/administradores/profile",
		cred:     &cred,
		fallback: "Error obteniendo perfil",
	})
	if err != nil {
		return nil, err
	}
	var admin entity.Administrador
	if err := extraer(raw, "admin", &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// CambiarPassword PUT /api/administradores/change-password.
func (c *Client) CambiarPassword(ctx context.Context, cred entity.Credenciales, actual, nuevo string) error {
	_, err := c.hacer(ctx, peticion{
		metodo: http.MethodPut,
		ruta:   "/api/administradores/change-password",
		cuerpo: map[string]string{
			"passwordActual": actual,
			"passwordNuevo":  nuevo,
		},
		cred:       &cred,
		fallback:   "Error cambiando contraseña",
		clase401:   domain.ErrBackend,
		mensaje401: "Contraseña actual incorrecta",
	})
	return err
}
