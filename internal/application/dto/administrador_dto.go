package dto

// CrearAdministradorRequest entrada para crear un administrador.
type CrearAdministradorRequest struct {
	Usuario  string `json:"usuario" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	RolID    *int64 `json:"rol_id,omitempty"`
}

// ActualizarAdministradorRequest campos opcionales a actualizar.
type ActualizarAdministradorRequest struct {
	Usuario  *string `json:"usuario,omitempty"`
	Password *string `json:"password,omitempty"`
	RolID    *int64  `json:"rol_id,omitempty"`
}

// AsignarRolRequest rol_id null quita el rol.
type AsignarRolRequest struct {
	RolID *int64 `json:"rol_id"`
}

// EstadisticasRoles respuesta de GET /api/roles/stats.
type EstadisticasRoles struct {
	TotalAdministradores  int            `json:"totalAdministradores"`
	AdministradoresSinRol int            `json:"administradoresSinRol"`
	DistribucionPorRol    map[string]int `json:"distribucionPorRol"`
}
