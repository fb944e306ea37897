package entity

import "time"

// Resultados posibles de una entrada de bitácora.
const (
	ResultadoExito     = "exito"
	ResultadoRechazado = "rechazado" // el backend rechazó la operación (4xx)
	ResultadoError     = "error"     // fallo de red o 5xx
)

// EntradaBitacora registro de auditoría de una mutación hecha desde la consola.
type EntradaBitacora struct {
	ID           string    `json:"id"`
	AdminID      int64     `json:"admin_id"`
	AdminUsuario string    `json:"admin_usuario"`
	Accion       string    `json:"accion"` // token de capacidad, ej. ordenes.cambiar_estado
	Recurso      string    `json:"recurso"`
	RecursoID    string    `json:"recurso_id,omitempty"`
	Detalle      string    `json:"detalle,omitempty"`
	Resultado    string    `json:"resultado"`
	CreadoEn     time.Time `json:"creado_en"`
}
