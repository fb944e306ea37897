// Package credenciales guarda en disco las credenciales de la consola de terminal.
package credenciales

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

var _ ports.AlmacenCredenciales = (*Almacen)(nil)

const (
	archivo = "credenciales.json"
	version = 1
)

type contenido struct {
	Version      int                 `json:"version"`
	Credenciales entity.Credenciales `json:"credenciales"`
	GuardadoEn   time.Time           `json:"guardado_en"`
}

// Almacen archivo JSON 0600 dentro de un directorio 0700.
type Almacen struct {
	dir string
}

// NewAlmacen crea el directorio si no existe. dir vacío = ~/.consola-admin.
func NewAlmacen(dir string) (*Almacen, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("credenciales: directorio home: %w", err)
		}
		dir = filepath.Join(home, ".consola-admin")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("credenciales: crear directorio: %w", err)
	}
	return &Almacen{dir: dir}, nil
}

// Ruta del archivo de credenciales.
func (a *Almacen) Ruta() string { return filepath.Join(a.dir, archivo) }

// Cargar lee las credenciales. Un archivo incompleto se trata como ausente.
func (a *Almacen) Cargar() (entity.Credenciales, bool, error) {
	data, err := os.ReadFile(a.Ruta())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.Credenciales{}, false, nil
		}
		return entity.Credenciales{}, false, fmt.Errorf("credenciales: leer: %w", err)
	}
	var c contenido
	if err := json.Unmarshal(data, &c); err != nil {
		return entity.Credenciales{}, false, fmt.Errorf("credenciales: archivo corrupto: %w", err)
	}
	if !c.Credenciales.Completas() {
		return entity.Credenciales{}, false, nil
	}
	return c.Credenciales, true, nil
}

// Guardar escribe en un temporal y renombra para no dejar archivos a medias.
func (a *Almacen) Guardar(cred entity.Credenciales) error {
	data, err := json.MarshalIndent(contenido{Version: version, Credenciales: cred, GuardadoEn: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("credenciales: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(a.dir, archivo+".*")
	if err != nil {
		return fmt.Errorf("credenciales: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("credenciales: permisos: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("credenciales: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("credenciales: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.Ruta()); err != nil {
		return fmt.Errorf("credenciales: guardar: %w", err)
	}
	return nil
}

// Borrar elimina el archivo; no falla si no existía.
func (a *Almacen) Borrar() error {
	if err := os.Remove(a.Ruta()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("credenciales: borrar: %w", err)
	}
	return nil
}
