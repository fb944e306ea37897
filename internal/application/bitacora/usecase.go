// Package bitacora registra y consulta las mutaciones hechas desde la consola.
package bitacora

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

// BitacoraUseCase auditoría de la consola. repo puede ser nil (sin base de datos):
// en ese caso Registrar solo escribe en el log.
type BitacoraUseCase struct {
	repo  repository.BitacoraRepository
	log   zerolog.Logger
	ahora func() time.Time
}

// NewBitacoraUseCase construye el caso de uso.
func NewBitacoraUseCase(repo repository.BitacoraRepository, log zerolog.Logger) *BitacoraUseCase {
	return &BitacoraUseCase{repo: repo, log: log.With().Str("component", "bitacora").Logger(), ahora: time.Now}
}

// Registrar guarda una entrada. Nunca devuelve error: un fallo de auditoría no
// debe tumbar la operación que se está auditando.
func (uc *BitacoraUseCase) Registrar(ctx context.Context, p *auth.Principal, accion permisos.Capacidad, recurso, recursoID, detalle string, resultado error) {
	if uc == nil {
		return
	}
	e := &entity.EntradaBitacora{
		ID:        uuid.New().String(),
		Accion:    string(accion),
		Recurso:   recurso,
		RecursoID: recursoID,
		Detalle:   detalle,
		Resultado: Resultado(resultado),
		CreadoEn:  uc.ahora().UTC(),
	}
	if p != nil {
		e.AdminID = p.Admin.ID
		e.AdminUsuario = p.Admin.Usuario
	}
	if resultado != nil && detalle == "" {
		e.Detalle = domain.MensajeUsuario(resultado)
	}

	uc.log.Info().
		Str("accion", e.Accion).
		Str("recurso", e.Recurso).
		Str("recurso_id", e.RecursoID).
		Int64("admin_id", e.AdminID).
		Str("resultado", e.Resultado).
		Msg("bitácora")

	if uc.repo == nil {
		return
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		uc.log.Error().Err(err).Str("accion", e.Accion).Msg("no se pudo persistir la entrada de bitácora")
	}
}

// Resultado clasifica el error de una operación: nil → exito, rechazo del backend
// o de la consola → rechazado, fallo de red o 5xx → error.
func Resultado(err error) string {
	if err == nil {
		return entity.ResultadoExito
	}
	if errors.Is(err, domain.ErrConexion) {
		return entity.ResultadoError
	}
	var be *domain.BackendError
	if errors.As(err, &be) && be.Status >= 500 {
		return entity.ResultadoError
	}
	return entity.ResultadoRechazado
}

// Listar consulta la bitácora; requiere bitacora.leer.
func (uc *BitacoraUseCase) Listar(ctx context.Context, p *auth.Principal, f repository.FiltroBitacora) (*dto.BitacoraListResponse, error) {
	if err := p.Exigir(permisos.BitacoraLeer); err != nil {
		return nil, err
	}
	if uc.repo == nil {
		return nil, fmt.Errorf("bitácora: %w: almacenamiento no configurado", domain.ErrNotFound)
	}
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	items, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("bitácora: listar: %w", err)
	}
	if items == nil {
		items = []*entity.EntradaBitacora{}
	}
	return &dto.BitacoraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}
