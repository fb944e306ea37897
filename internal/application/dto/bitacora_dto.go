package dto

import "github.com/jhoicas/consola-admin/internal/domain/entity"

// BitacoraListResponse lista paginada de la bitácora.
type BitacoraListResponse struct {
	Items []*entity.EntradaBitacora `json:"items"`
	Page  PageResponse              `json:"page"`
}
