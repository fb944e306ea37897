// Package preferencias guarda la configuración del dashboard de cada administrador.
package preferencias

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

const anioMinimo = 2000

// PreferenciasUseCase preferencias por administrador autenticado. repo nil = sin
// base de datos: siempre se devuelven los valores por defecto y Guardar falla.
type PreferenciasUseCase struct {
	repo  repository.PreferenciasRepository
	log   zerolog.Logger
	ahora func() time.Time
}

// NewPreferenciasUseCase construye el caso de uso.
func NewPreferenciasUseCase(repo repository.PreferenciasRepository, log zerolog.Logger) *PreferenciasUseCase {
	return &PreferenciasUseCase{repo: repo, log: log.With().Str("component", "preferencias").Logger(), ahora: time.Now}
}

func exigirSesion(p *auth.Principal) error {
	if p == nil || p.Admin.ID == 0 {
		return domain.ErrSinCredenciales
	}
	return nil
}

// Obtener devuelve las preferencias guardadas o las de por defecto.
func (uc *PreferenciasUseCase) Obtener(ctx context.Context, p *auth.Principal) (*entity.PreferenciasDashboard, error) {
	if err := exigirSesion(p); err != nil {
		return nil, err
	}
	if uc.repo == nil {
		return entity.PreferenciasPorDefecto(p.Admin.ID, uc.ahora()), nil
	}
	pref, err := uc.repo.GetByAdmin(ctx, p.Admin.ID)
	if err != nil {
		return nil, fmt.Errorf("preferencias: obtener: %w", err)
	}
	if pref == nil {
		return entity.PreferenciasPorDefecto(p.Admin.ID, uc.ahora()), nil
	}
	return pref, nil
}

// Guardar valida y persiste las preferencias del administrador autenticado.
// Los widgets ausentes del mapa quedan visibles; un orden vacío toma el de por defecto.
func (uc *PreferenciasUseCase) Guardar(ctx context.Context, p *auth.Principal, in entity.PreferenciasDashboard) (*entity.PreferenciasDashboard, error) {
	if err := exigirSesion(p); err != nil {
		return nil, err
	}
	ahora := uc.ahora()
	pref, err := Normalizar(in, ahora.Year())
	if err != nil {
		return nil, err
	}
	pref.AdminID = p.Admin.ID
	pref.ActualizadoEn = ahora.UTC()

	if uc.repo == nil {
		return nil, fmt.Errorf("preferencias: %w: almacenamiento no configurado", domain.ErrNotFound)
	}
	if err := uc.repo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("preferencias: guardar: %w", err)
	}
	uc.log.Debug().Int64("admin_id", p.Admin.ID).Msg("preferencias guardadas")
	return pref, nil
}

// Restablecer borra las preferencias guardadas y devuelve las de por defecto.
func (uc *PreferenciasUseCase) Restablecer(ctx context.Context, p *auth.Principal) (*entity.PreferenciasDashboard, error) {
	if err := exigirSesion(p); err != nil {
		return nil, err
	}
	if uc.repo != nil {
		if err := uc.repo.Delete(ctx, p.Admin.ID); err != nil {
			return nil, fmt.Errorf("preferencias: restablecer: %w", err)
		}
	}
	return entity.PreferenciasPorDefecto(p.Admin.ID, uc.ahora()), nil
}

// Normalizar valida la entrada y completa los valores omitidos.
func Normalizar(in entity.PreferenciasDashboard, anioActual int) (*entity.PreferenciasDashboard, error) {
	out := in

	out.WidgetsVisibles = make(map[string]bool, len(entity.WidgetsDashboard))
	for _, w := range entity.WidgetsDashboard {
		out.WidgetsVisibles[w] = true
	}
	for id, visible := range in.WidgetsVisibles {
		if !entity.EsWidget(id) {
			return nil, fmt.Errorf("%w: widget desconocido %q", domain.ErrInvalidInput, id)
		}
		out.WidgetsVisibles[id] = visible
	}

	if len(in.OrdenWidgets) == 0 {
		out.OrdenWidgets = append([]string(nil), entity.WidgetsDashboard...)
	} else {
		if len(in.OrdenWidgets) != len(entity.WidgetsDashboard) {
			return nil, fmt.Errorf("%w: el orden debe incluir los %d widgets exactamente una vez", domain.ErrInvalidInput, len(entity.WidgetsDashboard))
		}
		vistos := map[string]bool{}
		for _, id := range in.OrdenWidgets {
			if !entity.EsWidget(id) {
				return nil, fmt.Errorf("%w: widget desconocido %q", domain.ErrInvalidInput, id)
			}
			if vistos[id] {
				return nil, fmt.Errorf("%w: widget %q repetido en el orden", domain.ErrInvalidInput, id)
			}
			vistos[id] = true
		}
		out.OrdenWidgets = append([]string(nil), in.OrdenWidgets...)
	}

	c := in.Comparacion
	if c.AnioBase == 0 {
		c.AnioBase = anioActual
	}
	if c.AnioComparacion == 0 {
		c.AnioComparacion = c.AnioBase - 1
	}
	for _, a := range []int{c.AnioBase, c.AnioComparacion} {
		if a < anioMinimo || a > anioActual {
			return nil, fmt.Errorf("%w: año de comparación %d fuera de rango", domain.ErrInvalidInput, a)
		}
	}
	out.Comparacion = c

	if in.Alertas.UmbralStockBajo < 1 || in.Alertas.UmbralStockBajo > 100 {
		return nil, fmt.Errorf("%w: el umbral de stock bajo debe estar entre 1 y 100", domain.ErrInvalidInput)
	}
	// el umbral de tendencia se guarda siempre negativo
	umbral := math.Abs(in.Alertas.UmbralTendenciaNegativa)
	if umbral < 1 || umbral > 100 {
		return nil, fmt.Errorf("%w: el umbral de tendencia debe estar entre 1 y 100", domain.ErrInvalidInput)
	}
	out.Alertas.UmbralTendenciaNegativa = -umbral

	return &out, nil
}
