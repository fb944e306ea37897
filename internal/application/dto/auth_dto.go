package dto

import (
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// LoginRequest credenciales del formulario de inicio de sesión.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CambiarPasswordRequest entrada de PUT /api/auth/password.
type CambiarPasswordRequest struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	PasswordNuevo  string `json:"passwordNuevo" validate:"required,min=6"`
}

// SesionResponse principal autenticado con sus capacidades ya evaluadas.
type SesionResponse struct {
	Admin           entity.Administrador `json:"admin"`
	Rol             string               `json:"rol,omitempty"`
	EstadoRol       string               `json:"estado_rol"`
	MensajeRol      string               `json:"mensaje_rol,omitempty"`
	EsAdministrador bool                 `json:"es_administrador"`
	Capacidades     []string             `json:"capacidades"`
}
