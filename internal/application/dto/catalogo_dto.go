package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// CategoriaFiltros parámetros de búsqueda de categorías.
type CategoriaFiltros struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// CategoriaRequest entrada para crear o actualizar una categoría.
type CategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion string `json:"descripcion,omitempty"`
}

// CategoriaListResponse lista de categorías con paginación opcional.
type CategoriaListResponse struct {
	Categorias []entity.Categoria `json:"categorias"`
	Paginacion *entity.Paginacion `json:"pagination,omitempty"`
}

// ProductoFiltros parámetros de búsqueda de productos.
type ProductoFiltros struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Categoria  int64  `query:"categoria"`
	Disponible *bool  `query:"disponible"`
	Search     string `query:"search"`
}

// ProductoRequest entrada para crear o actualizar un producto.
type ProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	ImagenURL   string          `json:"imagen_url,omitempty"`
	Disponible  bool            `json:"disponible"`
	Categorias  []int64         `json:"categorias"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Productos  []entity.Producto  `json:"productos"`
	Paginacion *entity.Paginacion `json:"pagination,omitempty"`
}

// StockRequest entrada de PATCH /api/productos/:id/stock.
type StockRequest struct {
	Stock int `json:"stock"`
}

// StockCheckItem producto y cantidad a verificar.
type StockCheckItem struct {
	ID       int64 `json:"id"`
	Cantidad int   `json:"cantidad"`
}

// StockCheckResponse resultado de la verificación de stock.
type StockCheckResponse struct {
	Disponible bool `json:"disponible"`
	Productos  []struct {
		ID                 int64 `json:"id"`
		Disponible         bool  `json:"disponible"`
		StockActual        int   `json:"stock_actual"`
		CantidadSolicitada int   `json:"cantidad_solicitada"`
	} `json:"productos"`
}

// ImagenSubida respuesta de la subida de imagen.
type ImagenSubida struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
