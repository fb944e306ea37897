package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoOrden estado de una orden según el vocabulario del backend.
type EstadoOrden string

// Los cinco estados posibles. Completado y Cancelado son finales.
const (
	EstadoPendiente  EstadoOrden = "pendiente"
	EstadoPagado     EstadoOrden = "pagado"
	EstadoEnviado    EstadoOrden = "enviado"
	EstadoCompletado EstadoOrden = "completado"
	EstadoCancelado  EstadoOrden = "cancelado"
)

// Nombre devuelve la etiqueta legible del estado.
func (e EstadoOrden) Nombre() string {
	switch e {
	case EstadoPendiente:
		return "Pendiente"
	case EstadoPagado:
		return "Pagado"
	case EstadoEnviado:
		return "Enviado"
	case EstadoCompletado:
		return "Completado"
	case EstadoCancelado:
		return "Cancelado"
	}
	return string(e)
}

// DetalleOrden línea de una orden.
type DetalleOrden struct {
	ID             int64           `json:"id"`
	OrdenID        int64           `json:"orden_id"`
	ProductoID     int64           `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Orden registro de compra. El total y los detalles los calcula el backend;
// la consola nunca los recalcula.
type Orden struct {
	ID           int64           `json:"id"`
	Cliente      string          `json:"cliente"`
	Telefono     string          `json:"telefono,omitempty"`
	Direccion    string          `json:"direccion,omitempty"`
	Notas        string          `json:"notas,omitempty"`
	Estado       EstadoOrden     `json:"estado"`
	Total        decimal.Decimal `json:"total"`
	Fecha        time.Time       `json:"fecha"`
	AdminID      *int64          `json:"admin_id,omitempty"`
	AdminUsuario string          `json:"admin_usuario,omitempty"`
	Detalles     []DetalleOrden  `json:"detalles,omitempty"`
}
