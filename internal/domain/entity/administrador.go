package entity

import (
	"strings"
	"time"
)

// Rol rol del catálogo del backend (espejo de solo lectura).
type Rol struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Administrador principal autenticado. RolID nil es un estado válido: cero capacidades.
type Administrador struct {
	ID       int64     `json:"id"`
	Usuario  string    `json:"usuario"`
	RolID    *int64    `json:"rol_id,omitempty"`
	Rol      *Rol      `json:"rol,omitempty"`
	CreadoEn time.Time `json:"creado_en"`
}

// NombreRol devuelve el nombre del rol asignado o "" si no tiene.
func (a *Administrador) NombreRol() string {
	if a == nil || a.Rol == nil {
		return ""
	}
	return strings.TrimSpace(a.Rol.Nombre)
}

// Credenciales usuario y contraseña que viajan en x-admin-user / x-admin-password.
type Credenciales struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// Completas informa si ambas partes están presentes.
func (c Credenciales) Completas() bool {
	return c.Usuario != "" && c.Password != ""
}
