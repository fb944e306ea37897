package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

var _ repository.PreferenciasRepository = (*PreferenciasRepo)(nil)

// PreferenciasRepo preferencias del dashboard por administrador. Widgets y orden van en JSONB.
type PreferenciasRepo struct {
	q Querier
}

// NewPreferenciasRepository construye el adaptador. Acepta pool o tx.
func NewPreferenciasRepository(q Querier) *PreferenciasRepo {
	return &PreferenciasRepo{q: q}
}

// GetByAdmin devuelve nil, nil si no hay fila.
func (r *PreferenciasRepo) GetByAdmin(ctx context.Context, adminID int64) (*entity.PreferenciasDashboard, error) {
	query := `
		SELECT admin_id, widgets_visibles, orden_widgets, modo_oscuro,
		       comparacion_activa, anio_base, anio_comparacion,
		       alerta_stock_bajo, umbral_stock_bajo, alerta_tendencia, umbral_tendencia, actualizado_en
		FROM preferencias_dashboard WHERE admin_id = $1`
	var (
		p               entity.PreferenciasDashboard
		widgets, orden  []byte
		umbralTendencia decimal.Decimal
	)
	err := r.q.QueryRow(ctx, query, adminID).Scan(
		&p.AdminID, &widgets, &orden, &p.ModoOscuro,
		&p.Comparacion.Habilitado, &p.Comparacion.AnioBase, &p.Comparacion.AnioComparacion,
		&p.Alertas.StockBajo, &p.Alertas.UmbralStockBajo, &p.Alertas.TendenciasNegativas, &umbralTendencia,
		&p.ActualizadoEn,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferencias: %w", err)
	}
	if err := json.Unmarshal(widgets, &p.WidgetsVisibles); err != nil {
		return nil, fmt.Errorf("decode widgets_visibles: %w", err)
	}
	if err := json.Unmarshal(orden, &p.OrdenWidgets); err != nil {
		return nil, fmt.Errorf("decode orden_widgets: %w", err)
	}
	p.Alertas.UmbralTendenciaNegativa = umbralTendencia.InexactFloat64()
	return &p, nil
}

// Upsert inserta o reemplaza las preferencias del administrador.
func (r *PreferenciasRepo) Upsert(ctx context.Context, p *entity.PreferenciasDashboard) error {
	widgets, err := json.Marshal(p.WidgetsVisibles)
	if err != nil {
		return fmt.Errorf("encode widgets_visibles: %w", err)
	}
	orden, err := json.Marshal(p.OrdenWidgets)
	if err != nil {
		return fmt.Errorf("encode orden_widgets: %w", err)
	}
	query := `
		INSERT INTO preferencias_dashboard (
			admin_id, widgets_visibles, orden_widgets, modo_oscuro,
			comparacion_activa, anio_base, anio_comparacion,
			alerta_stock_bajo, umbral_stock_bajo, alerta_tendencia, umbral_tendencia, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (admin_id) DO UPDATE SET
			widgets_visibles = EXCLUDED.widgets_visibles,
			orden_widgets = EXCLUDED.orden_widgets,
			modo_oscuro = EXCLUDED.modo_oscuro,
			comparacion_activa = EXCLUDED.comparacion_activa,
			anio_base = EXCLUDED.anio_base,
			anio_comparacion = EXCLUDED.anio_comparacion,
			alerta_stock_bajo = EXCLUDED.alerta_stock_bajo,
			umbral_stock_bajo = EXCLUDED.umbral_stock_bajo,
			alerta_tendencia = EXCLUDED.alerta_tendencia,
			umbral_tendencia = EXCLUDED.umbral_tendencia,
			actualizado_en = EXCLUDED.actualizado_en`
	_, err = r.q.Exec(ctx, query,
		p.AdminID, string(widgets), string(orden), p.ModoOscuro,
		p.Comparacion.Habilitado, p.Comparacion.AnioBase, p.Comparacion.AnioComparacion,
		p.Alertas.StockBajo, p.Alertas.UmbralStockBajo, p.Alertas.TendenciasNegativas,
		decimal.NewFromFloat(p.Alertas.UmbralTendenciaNegativa).Round(2),
		p.ActualizadoEn,
	)
	if err != nil {
		return fmt.Errorf("upsert preferencias: %w", err)
	}
	return nil
}

// Delete elimina las preferencias; no falla si no existían.
func (r *PreferenciasRepo) Delete(ctx context.Context, adminID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM preferencias_dashboard WHERE admin_id = $1`, adminID); err != nil {
		return fmt.Errorf("delete preferencias: %w", err)
	}
	return nil
}
