package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrOperacionEnCurso = errors.New("ya hay una operación en curso para este recurso")

	// Taxonomía de errores del backend. Todo error que cruza el cliente REST
	// termina en exactamente una de estas clases.
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrSinCredenciales       = errors.New("no hay credenciales de autenticación")
	ErrSesionInvalida        = errors.New("sesión expirada. Por favor, inicia sesión nuevamente")
	ErrTransicionInvalida    = errors.New("transición de estado inválida")
	ErrBackend               = errors.New("error del servidor")
	ErrConexion              = errors.New("error de conexión. Verifica que el servidor esté funcionando")
)

// BackendError error normalizado devuelto por el cliente REST.
// Clase indica a cuál de los sentinelas pertenece (errors.Is funciona contra ella).
type BackendError struct {
	Clase    error
	Status   int      // 0 si no hubo respuesta
	Mensaje  string   // mensaje del campo "error" del backend o fallback localizado
	Detalles []string // campo "details" del backend, si existe
	Causa    error    // error de transporte original (solo para logs)
}

func (e *BackendError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	if e.Clase != nil {
		return e.Clase.Error()
	}
	return fmt.Sprintf("backend HTTP %d", e.Status)
}

// Unwrap expone la clase para errors.Is.
func (e *BackendError) Unwrap() error { return e.Clase }

// TransicionInvalida construye el error específico de cambio de estado rechazado.
func TransicionInvalida(desde, hacia string, status int) *BackendError {
	return &BackendError{
		Clase:   ErrTransicionInvalida,
		Status:  status,
		Mensaje: fmt.Sprintf("Transición inválida: No se puede cambiar de %q a %q", desde, hacia),
	}
}

// MensajeUsuario devuelve el texto a mostrar para cualquier error normalizado.
func MensajeUsuario(err error) string {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Error()
	}
	return err.Error()
}
