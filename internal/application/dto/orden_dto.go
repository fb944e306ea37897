package dto

import (
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// OrdenesParams paginación, orden y filtro de estado para el listado de órdenes.
type OrdenesParams struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`    // id | fecha | total | cliente
	SortOrder string `query:"sortOrder"` // asc | desc
	Estado    string `query:"estado"`    // "" o "todas" = sin filtro
}

// PaginacionOrdenes metadatos de página del listado de órdenes.
type PaginacionOrdenes struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// OrdenesPaginadas respuesta del listado de órdenes.
type OrdenesPaginadas struct {
	Ordenes    []entity.Orden    `json:"ordenes"`
	Paginacion PaginacionOrdenes `json:"pagination"`
}

// ItemOrdenRequest producto y cantidad de una orden.
type ItemOrdenRequest struct {
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// CrearOrdenRequest entrada para crear una orden.
type CrearOrdenRequest struct {
	Cliente   string             `json:"cliente" validate:"required"`
	Telefono  string             `json:"telefono,omitempty"`
	Direccion string             `json:"direccion,omitempty"`
	Notas     string             `json:"notas,omitempty"`
	Productos []ItemOrdenRequest `json:"productos" validate:"required,min=1"`
}

// ActualizarOrdenRequest campos opcionales de una orden.
type ActualizarOrdenRequest struct {
	Cliente   *string            `json:"cliente,omitempty"`
	Telefono  *string            `json:"telefono,omitempty"`
	Direccion *string            `json:"direccion,omitempty"`
	Notas     *string            `json:"notas,omitempty"`
	Productos []ItemOrdenRequest `json:"productos,omitempty"`
}

// CambiarEstadoRequest cuerpo de PUT /api/ordenes/:id/estado (igual en backend y consola).
type CambiarEstadoRequest struct {
	NuevoEstado entity.EstadoOrden `json:"nuevoEstado"`
}

// Modos de presentación del control de estado.
const (
	ModoSelector = "selector"
	ModoInsignia = "insignia"
)

// OpcionEstado estado destino ofrecido en el selector.
type OpcionEstado struct {
	Valor  entity.EstadoOrden `json:"valor"`
	Nombre string             `json:"nombre"`
}

// ControlEstadoDTO qué control de estado debe mostrar la interfaz para una orden.
// Opciones sale exclusivamente de la lista filtrada; un destino ilegal no se puede elegir.
type ControlEstadoDTO struct {
	Estado       entity.EstadoOrden `json:"estado"`
	NombreEstado string             `json:"nombre_estado"`
	Modo         string             `json:"modo"`
	Opciones     []OpcionEstado     `json:"opciones"`
	EsFinal      bool               `json:"es_final"`
}

// OrdenDetalleResponse orden con su control de estado.
type OrdenDetalleResponse struct {
	Orden   entity.Orden     `json:"orden"`
	Control ControlEstadoDTO `json:"control_estado"`
}
