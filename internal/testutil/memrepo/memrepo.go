// Package memrepo repositorios en memoria para pruebas.
package memrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

var (
	_ repository.BitacoraRepository     = (*Bitacora)(nil)
	_ repository.PreferenciasRepository = (*Preferencias)(nil)
)

// Bitacora guarda las entradas en orden de inserción.
type Bitacora struct {
	mu       sync.Mutex
	entradas []*entity.EntradaBitacora
	Err      error
}

func (r *Bitacora) Create(_ context.Context, e *entity.EntradaBitacora) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *e
	r.entradas = append(r.entradas, &cp)
	return nil
}

func (r *Bitacora) List(_ context.Context, f repository.FiltroBitacora) ([]*entity.EntradaBitacora, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var filtradas []*entity.EntradaBitacora
	for i := len(r.entradas) - 1; i >= 0; i-- {
		e := r.entradas[i]
		if f.AdminID != 0 && e.AdminID != f.AdminID {
			continue
		}
		if f.Accion != "" && e.Accion != f.Accion {
			continue
		}
		filtradas = append(filtradas, e)
	}
	total := len(filtradas)
	if f.Offset >= total {
		return []*entity.EntradaBitacora{}, total, nil
	}
	fin := f.Offset + f.Limit
	if f.Limit <= 0 || fin > total {
		fin = total
	}
	return filtradas[f.Offset:fin], total, nil
}

// Entradas copia de todas las entradas, en orden de inserción.
func (r *Bitacora) Entradas() []entity.EntradaBitacora {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.EntradaBitacora, 0, len(r.entradas))
	for _, e := range r.entradas {
		out = append(out, *e)
	}
	return out
}

// Preferencias por administrador.
type Preferencias struct {
	mu    sync.Mutex
	datos map[int64]entity.PreferenciasDashboard
	Err   error
}

func (r *Preferencias) GetByAdmin(_ context.Context, adminID int64) (*entity.PreferenciasDashboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.datos[adminID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *Preferencias) Upsert(_ context.Context, p *entity.PreferenciasDashboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.datos == nil {
		r.datos = map[int64]entity.PreferenciasDashboard{}
	}
	r.datos[p.AdminID] = *p
	return nil
}

func (r *Preferencias) Delete(_ context.Context, adminID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.datos, adminID)
	return nil
}

// Admins ids con preferencias guardadas, ordenados.
func (r *Preferencias) Admins() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, 0, len(r.datos))
	for id := range r.datos {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
