package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

func TestFiltroBitacoraSQL(t *testing.T) {
	where, args := filtroBitacoraSQL(repository.FiltroBitacora{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = filtroBitacoraSQL(repository.FiltroBitacora{AdminID: 7})
	assert.Equal(t, " WHERE admin_id = $1", where)
	assert.Equal(t, []any{int64(7)}, args)

	where, args = filtroBitacoraSQL(repository.FiltroBitacora{AdminID: 7, Accion: "ordenes.cambiar_estado"})
	assert.Equal(t, " WHERE admin_id = $1 AND accion = $2", where)
	assert.Equal(t, []any{int64(7), "ordenes.cambiar_estado"}, args)

	where, args = filtroBitacoraSQL(repository.FiltroBitacora{Accion: "categorias.crear"})
	assert.Equal(t, " WHERE accion = $1", where)
	assert.Len(t, args, 1)
}

func TestParseMigracion(t *testing.T) {
	m, ok, err := parseMigracion("2_preferencias_dashboard.sql")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, m.version)

	_, ok, err = parseMigracion("README.md")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = parseMigracion("inicial.sql")
	assert.Error(t, err)

	_, _, err = parseMigracion("x_inicial.sql")
	assert.Error(t, err)
}

func TestLeerMigraciones_Ordenadas(t *testing.T) {
	ms, err := leerMigraciones()
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].version)
	assert.Contains(t, ms[0].sql, "CREATE TABLE IF NOT EXISTS bitacora")
	assert.Contains(t, ms[0].sql, "schema_migrations")
	assert.Equal(t, 2, ms[1].version)
	assert.Contains(t, ms[1].sql, "preferencias_dashboard")
}
