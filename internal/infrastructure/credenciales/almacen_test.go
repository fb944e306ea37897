package credenciales_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/infrastructure/credenciales"
)

func TestAlmacen_CicloCompleto(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "consola")
	a, err := credenciales.NewAlmacen(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	_, ok, err := a.Cargar()
	require.NoError(t, err)
	assert.False(t, ok)

	cred := entity.Credenciales{Usuario: "admin", Password: "secreto"}
	require.NoError(t, a.Guardar(cred))

	info, err = os.Stat(a.Ruta())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	leidas, ok, err := a.Cargar()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cred, leidas)

	require.NoError(t, a.Borrar())
	_, ok, err = a.Cargar()
	require.NoError(t, err)
	assert.False(t, ok)

	// borrar dos veces no falla
	require.NoError(t, a.Borrar())
}

func TestAlmacen_Sobrescribe(t *testing.T) {
	a, err := credenciales.NewAlmacen(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, a.Guardar(entity.Credenciales{Usuario: "uno", Password: "p1"}))
	require.NoError(t, a.Guardar(entity.Credenciales{Usuario: "dos", Password: "p2"}))

	c, ok, err := a.Cargar()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dos", c.Usuario)
}

func TestAlmacen_ArchivoCorrupto(t *testing.T) {
	a, err := credenciales.NewAlmacen(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(a.Ruta(), []byte("{no es json"), 0o600))

	_, _, err = a.Cargar()
	assert.Error(t, err)
}

func TestAlmacen_Incompletas(t *testing.T) {
	a, err := credenciales.NewAlmacen(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(a.Ruta(), []byte(`{"version":1,"credenciales":{"usuario":"x"}}`), 0o600))

	_, ok, err := a.Cargar()
	require.NoError(t, err)
	assert.False(t, ok)
}
