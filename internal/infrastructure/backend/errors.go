package backend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jhoicas/consola-admin/internal/domain"
)

const (
	msgSesionExpirada = "Sesión expirada. Por favor, inicia sesión nuevamente."
	msgConexion       = "Error de conexión. Verifica que el servidor esté funcionando."
)

// normalizar traduce una respuesta no exitosa a una de las clases de domain.
func normalizar(status int, raw []byte, p peticion) *domain.BackendError {
	var env envelope
	_ = json.Unmarshal(raw, &env)

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if p.clase401 != nil {
			return &domain.BackendError{
				Clase:    p.clase401,
				Status:   status,
				Mensaje:  primero(p.mensaje401, env.Error),
				Detalles: env.Details,
			}
		}
		return &domain.BackendError{
			Clase:    domain.ErrSesionInvalida,
			Status:   status,
			Mensaje:  msgSesionExpirada,
			Detalles: env.Details,
		}
	}

	mensaje := p.mensajes[status]
	if mensaje == "" {
		mensaje = primero(env.Error, env.Message, p.fallback, fallbackPorStatus(status))
	}
	return &domain.BackendError{
		Clase:    domain.ErrBackend,
		Status:   status,
		Mensaje:  mensaje,
		Detalles: env.Details,
	}
}

func fallbackPorStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "Recurso no encontrado"
	case status == http.StatusConflict:
		return "Conflicto con el estado actual del recurso"
	case status == http.StatusBadRequest:
		return "Datos inválidos"
	case status >= 500:
		return "Error interno del servidor"
	}
	return "Error del servidor"
}

func errorConexion(causa error) *domain.BackendError {
	return &domain.BackendError{Clase: domain.ErrConexion, Mensaje: msgConexion, Causa: causa}
}

func errorsIsSesion(be *domain.BackendError) bool {
	return errors.Is(be, domain.ErrSesionInvalida)
}
