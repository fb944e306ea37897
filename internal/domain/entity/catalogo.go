package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria categoría de productos del gimnasio.
type Categoria struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Producto producto del catálogo. Stock lo administra el backend.
type Producto struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"`
	Stock         int             `json:"stock"`
	ImagenURL     *string         `json:"imagen_url"`
	Disponible    bool            `json:"disponible"`
	CreadoEn      time.Time       `json:"creado_en"`
	ActualizadoEn time.Time       `json:"actualizado_en"`
	Categorias    []Categoria     `json:"categorias,omitempty"`
}

// Paginacion metadatos de página tal como los devuelve el backend.
type Paginacion struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}
