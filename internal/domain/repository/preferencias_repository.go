package repository

import (
	"context"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// PreferenciasRepository define el puerto de persistencia de preferencias del dashboard.
type PreferenciasRepository interface {
	// GetByAdmin devuelve nil, nil si el administrador no ha guardado preferencias.
	GetByAdmin(ctx context.Context, adminID int64) (*entity.PreferenciasDashboard, error)
	Upsert(ctx context.Context, p *entity.PreferenciasDashboard) error
	Delete(ctx context.Context, adminID int64) error
}
