package ports

import (
	"context"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// ComprobanteGenerator genera el comprobante imprimible (PDF) de una orden.
type ComprobanteGenerator interface {
	GenerarComprobante(ctx context.Context, orden *entity.Orden) ([]byte, error)
}
