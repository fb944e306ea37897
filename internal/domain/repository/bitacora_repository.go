package repository

import (
	"context"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// FiltroBitacora criterios de consulta de la bitácora.
type FiltroBitacora struct {
	AdminID int64  // 0 = todos
	Accion  string // "" = todas
	Limit   int
	Offset  int
}

// BitacoraRepository define el puerto de persistencia de la bitácora (DIP).
type BitacoraRepository interface {
	Create(ctx context.Context, e *entity.EntradaBitacora) error
	List(ctx context.Context, f FiltroBitacora) ([]*entity.EntradaBitacora, int, error)
}
