package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

var _ repository.BitacoraRepository = (*BitacoraRepo)(nil)

// BitacoraRepo implementación del puerto BitacoraRepository sobre PostgreSQL.
type BitacoraRepo struct {
	q Querier
}

// NewBitacoraRepository construye el adaptador. Acepta pool o tx.
func NewBitacoraRepository(q Querier) *BitacoraRepo {
	return &BitacoraRepo{q: q}
}

// Create inserta una entrada.
func (r *BitacoraRepo) Create(ctx context.Context, e *entity.EntradaBitacora) error {
	query := `
		INSERT INTO bitacora (id, admin_id, admin_usuario, accion, recurso, recurso_id, detalle, resultado, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AdminID, e.AdminUsuario, e.Accion, e.Recurso,
		e.RecursoID, e.Detalle, e.Resultado, e.CreadoEn,
	)
	if err != nil {
		return fmt.Errorf("insert bitacora: %w", err)
	}
	return nil
}

// List entradas más recientes primero, junto con el total que cumple el filtro.
func (r *BitacoraRepo) List(ctx context.Context, f repository.FiltroBitacora) ([]*entity.EntradaBitacora, int, error) {
	where, args := filtroBitacoraSQL(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bitacora`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bitacora: %w", err)
	}

	n := len(args)
	query := `
		SELECT id::text, admin_id, admin_usuario, accion, recurso, recurso_id, detalle, resultado, creado_en
		FROM bitacora` + where + `
		ORDER BY creado_en DESC
		LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bitacora: %w", err)
	}
	defer rows.Close()

	var list []*entity.EntradaBitacora
	for rows.Next() {
		var e entity.EntradaBitacora
		if err := rows.Scan(&e.ID, &e.AdminID, &e.AdminUsuario, &e.Accion, &e.Recurso,
			&e.RecursoID, &e.Detalle, &e.Resultado, &e.CreadoEn); err != nil {
			return nil, 0, fmt.Errorf("scan bitacora: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// filtroBitacoraSQL arma el WHERE con placeholders numerados desde $1.
func filtroBitacoraSQL(f repository.FiltroBitacora) (string, []any) {
	var conds []string
	var args []any
	if f.AdminID > 0 {
		args = append(args, f.AdminID)
		conds = append(conds, "admin_id = $"+strconv.Itoa(len(args)))
	}
	if f.Accion != "" {
		args = append(args, f.Accion)
		conds = append(conds, "accion = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
