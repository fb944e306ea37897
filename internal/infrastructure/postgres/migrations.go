package postgres

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migracion struct {
	version int
	nombre  string
	sql     string
}

// Migrar aplica en orden las migraciones pendientes, cada una en su propia transacción.
func Migrar(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	pendientes, err := leerMigraciones()
	if err != nil {
		return err
	}
	tx := NewTxRunner(pool)
	for _, m := range pendientes {
		aplicada, err := migracionAplicada(ctx, pool, m.version)
		if err != nil {
			return fmt.Errorf("migración %s: %w", m.nombre, err)
		}
		if aplicada {
			continue
		}
		err = tx.Run(ctx, func(q Querier) error {
			if _, err := q.Exec(ctx, m.sql); err != nil {
				return err
			}
			_, err := q.Exec(ctx, `INSERT INTO schema_migrations (version, nombre) VALUES ($1, $2)`, m.version, m.nombre)
			return err
		})
		if err != nil {
			return fmt.Errorf("migración %s: %w", m.nombre, err)
		}
		log.Info().Int("version", m.version).Str("nombre", m.nombre).Msg("migración aplicada")
	}
	return nil
}

func leerMigraciones() ([]migracion, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var out []migracion
	for _, e := range entries {
		m, ok, err := parseMigracion(e.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		contenido, err := migrationsFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		m.sql = string(contenido)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// parseMigracion "1_bitacora.sql" -> versión 1. ok=false para archivos que no son .sql.
func parseMigracion(nombre string) (migracion, bool, error) {
	if !strings.HasSuffix(nombre, ".sql") {
		return migracion{}, false, nil
	}
	partes := strings.SplitN(nombre, "_", 2)
	if len(partes) < 2 {
		return migracion{}, false, fmt.Errorf("migración sin versión: %s", nombre)
	}
	v, err := strconv.Atoi(partes[0])
	if err != nil || v <= 0 {
		return migracion{}, false, fmt.Errorf("versión inválida en %s", nombre)
	}
	return migracion{version: v, nombre: nombre}, true, nil
}

func migracionAplicada(ctx context.Context, q Querier, version int) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&ok)
	if err != nil {
		if isUndefinedTable(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
