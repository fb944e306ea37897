// Package fakebackend implementa ports.Backend en memoria para las pruebas de los
// casos de uso. Reproduce la normalización de errores del cliente REST.
package fakebackend

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

var _ ports.Backend = (*Backend)(nil)

// Backend estado en memoria. Los campos exportados se pueden sembrar antes de usarlo.
type Backend struct {
	mu sync.Mutex

	Admins     map[int64]*entity.Administrador
	Passwords  map[int64]string
	Roles      []entity.Rol
	Categorias map[int64]*entity.Categoria
	Productos  map[int64]*entity.Producto
	Ordenes    map[int64]*entity.Orden

	DatosGeneral     *dto.APIDashboardGeneral
	DatosMensual     *dto.APIVentasPeriodo
	DatosDiario      *dto.APIVentasPeriodo
	DatosTop         *dto.APITopProductos
	DatosAnalisis    *dto.APIAnalisisCategorias
	DatosComparativa *dto.APIComparativaAnual

	// Errores fuerza el error devuelto por un método (clave = nombre del método).
	Errores              map[string]error
	// AntesDeCambiarEstado se invoca dentro de CambiarEstado (p. ej. para bloquear).
	AntesDeCambiarEstado func()

	llamadas  []string
	siguiente int64
}

// New crea un backend vacío.
func New() *Backend {
	return &Backend{
		Admins:     map[int64]*entity.Administrador{},
		Passwords:  map[int64]string{},
		Categorias: map[int64]*entity.Categoria{},
		Productos:  map[int64]*entity.Producto{},
		Ordenes:    map[int64]*entity.Orden{},
		Errores:    map[string]error{},
		siguiente:  1000,
	}
}

// AgregarAdmin siembra un administrador con rol (rolNombre "" = sin rol).
func (b *Backend) AgregarAdmin(id int64, usuario, password, rolNombre string) entity.Credenciales {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := &entity.Administrador{ID: id, Usuario: usuario, CreadoEn: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	if rolNombre != "" {
		rolID := int64(len(b.Roles) + 1)
		for _, r := range b.Roles {
			if r.Nombre == rolNombre {
				rolID = r.ID
			}
		}
		if rolID == int64(len(b.Roles)+1) {
			b.Roles = append(b.Roles, entity.Rol{ID: rolID, Nombre: rolNombre})
		}
		a.RolID = &rolID
		a.Rol = &entity.Rol{ID: rolID, Nombre: rolNombre}
	}
	b.Admins[id] = a
	b.Passwords[id] = password
	return entity.Credenciales{Usuario: usuario, Password: password}
}

// AgregarOrden siembra una orden.
func (b *Backend) AgregarOrden(o entity.Orden) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Ordenes[o.ID] = &o
}

// Llamadas devuelve la lista de métodos invocados, en orden.
func (b *Backend) Llamadas() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.llamadas))
	copy(out, b.llamadas)
	return out
}

// LimpiarLlamadas olvida las llamadas registradas (útil tras sembrar sesiones).
func (b *Backend) LimpiarLlamadas() {
	b.mu.Lock()
	b.llamadas = nil
	b.mu.Unlock()
}

// Conteo cuántas veces se invocó metodo.
func (b *Backend) Conteo(metodo string) int {
	n := 0
	for _, l := range b.Llamadas() {
		if l == metodo {
			n++
		}
	}
	return n
}

// FijarError fuerza el error de un método (nil lo limpia).
func (b *Backend) FijarError(metodo string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.Errores, metodo)
		return
	}
	b.Errores[metodo] = err
}

// Error construye un error normalizado como lo haría el cliente REST.
func Error(status int, mensaje string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.BackendError{Clase: domain.ErrSesionInvalida, Status: status, Mensaje: "Sesión expirada. Por favor, inicia sesión nuevamente."}
	case 0:
		return &domain.BackendError{Clase: domain.ErrConexion, Mensaje: "Error de conexión. Verifica que el servidor esté funcionando."}
	}
	return &domain.BackendError{Clase: domain.ErrBackend, Status: status, Mensaje: mensaje}
}

// entrar registra la llamada y devuelve el error forzado, si lo hay. Debe llamarse con mu tomado.
func (b *Backend) entrar(metodo string) error {
	b.llamadas = append(b.llamadas, metodo)
	return b.Errores[metodo]
}

func (b *Backend) autenticar(cred entity.Credenciales) (*entity.Administrador, error) {
	if !cred.Completas() {
		return nil, &domain.BackendError{Clase: domain.ErrSinCredenciales, Mensaje: "No hay credenciales de autenticación"}
	}
	for id, a := range b.Admins {
		if a.Usuario == cred.Usuario && b.Passwords[id] == cred.Password {
			return a, nil
		}
	}
	return nil, Error(http.StatusUnauthorized, "")
}

func copiaAdmin(a *entity.Administrador) *entity.Administrador {
	c := *a
	return &c
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (b *Backend) VerificarCredenciales(_ context.Context, cred entity.Credenciales) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("VerificarCredenciales"); err != nil {
		return nil, err
	}
	a, err := b.autenticar(cred)
	if err != nil {
		return nil, &domain.BackendError{Clase: domain.ErrCredencialesInvalidas, Status: http.StatusUnauthorized, Mensaje: "Usuario o contraseña incorrectos"}
	}
	return &entity.Administrador{ID: a.ID, Usuario: a.Usuario, CreadoEn: a.CreadoEn}, nil
}

func (b *Backend) ObtenerPerfil(_ context.Context, cred entity.Credenciales) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerPerfil"); err != nil {
		return nil, err
	}
	a, err := b.autenticar(cred)
	if err != nil {
		return nil, err
	}
	return copiaAdmin(a), nil
}

func (b *Backend) CambiarPassword(_ context.Context, cred entity.Credenciales, actual, nuevo string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CambiarPassword"); err != nil {
		return err
	}
	a, err := b.autenticar(cred)
	if err != nil {
		return err
	}
	if b.Passwords[a.ID] != actual {
		return &domain.BackendError{Clase: domain.ErrBackend, Status: http.StatusUnauthorized, Mensaje: "Contraseña actual incorrecta"}
	}
	b.Passwords[a.ID] = nuevo
	return nil
}

// ── Roles y administradores ──────────────────────────────────────────────────

func (b *Backend) ListarRoles(_ context.Context, cred entity.Credenciales) ([]entity.Rol, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ListarRoles"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	out := make([]entity.Rol, len(b.Roles))
	copy(out, b.Roles)
	return out, nil
}

func (b *Backend) ObtenerRol(_ context.Context, cred entity.Credenciales, id int64) (*entity.Rol, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerRol"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	for _, r := range b.Roles {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, Error(http.StatusNotFound, "Rol no encontrado")
}

func (b *Backend) EstadisticasRoles(_ context.Context, cred entity.Credenciales) (*dto.EstadisticasRoles, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("EstadisticasRoles"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	out := &dto.EstadisticasRoles{DistribucionPorRol: map[string]int{}}
	for _, a := range b.Admins {
		out.TotalAdministradores++
		if a.Rol == nil {
			out.AdministradoresSinRol++
			continue
		}
		out.DistribucionPorRol[a.Rol.Nombre]++
	}
	return out, nil
}

func (b *Backend) ListarAdministradores(_ context.Context, cred entity.Credenciales) ([]entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ListarAdministradores"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	out := make([]entity.Administrador, 0, len(b.Admins))
	for _, a := range b.Admins {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) ObtenerAdministrador(_ context.Context, cred entity.Credenciales, id int64) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerAdministrador"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	a, ok := b.Admins[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Administrador no encontrado")
	}
	return copiaAdmin(a), nil
}

func (b *Backend) CrearAdministrador(_ context.Context, cred entity.Credenciales, in dto.CrearAdministradorRequest) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CrearAdministrador"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	for _, a := range b.Admins {
		if strings.EqualFold(a.Usuario, in.Usuario) {
			return nil, Error(http.StatusConflict, "Ya existe un administrador con ese usuario")
		}
	}
	b.siguiente++
	a := &entity.Administrador{ID: b.siguiente, Usuario: in.Usuario, RolID: in.RolID}
	b.Admins[a.ID] = a
	b.Passwords[a.ID] = in.Password
	return copiaAdmin(a), nil
}

func (b *Backend) ActualizarAdministrador(_ context.Context, cred entity.Credenciales, id int64, in dto.ActualizarAdministradorRequest) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ActualizarAdministrador"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	a, ok := b.Admins[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Administrador no encontrado")
	}
	if in.Usuario != nil {
		a.Usuario = *in.Usuario
	}
	if in.Password != nil {
		b.Passwords[id] = *in.Password
	}
	if in.RolID != nil {
		a.RolID = in.RolID
	}
	return copiaAdmin(a), nil
}

func (b *Backend) EliminarAdministrador(_ context.Context, cred entity.Credenciales, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("EliminarAdministrador"); err != nil {
		return err
	}
	if _, err := b.autenticar(cred); err != nil {
		return err
	}
	if _, ok := b.Admins[id]; !ok {
		return Error(http.StatusNotFound, "Administrador no encontrado")
	}
	delete(b.Admins, id)
	return nil
}

func (b *Backend) AsignarRol(_ context.Context, cred entity.Credenciales, id int64, rolID *int64) (*entity.Administrador, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("AsignarRol"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	a, ok := b.Admins[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Administrador no encontrado")
	}
	a.RolID, a.Rol = nil, nil
	if rolID != nil {
		for _, r := range b.Roles {
			if r.ID == *rolID {
				r := r
				a.RolID = &r.ID
				a.Rol = &r
			}
		}
		if a.Rol == nil {
			return nil, Error(http.StatusNotFound, "Rol no encontrado")
		}
	}
	return copiaAdmin(a), nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func (b *Backend) ListarCategorias(_ context.Context, f dto.CategoriaFiltros) (*dto.CategoriaListResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ListarCategorias"); err != nil {
		return nil, err
	}
	out := &dto.CategoriaListResponse{Categorias: []entity.Categoria{}}
	for _, c := range b.Categorias {
		if f.Search == "" || strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(f.Search)) {
			out.Categorias = append(out.Categorias, *c)
		}
	}
	sort.Slice(out.Categorias, func(i, j int) bool { return out.Categorias[i].ID < out.Categorias[j].ID })
	return out, nil
}

func (b *Backend) ObtenerCategoria(_ context.Context, id int64) (*entity.Categoria, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerCategoria"); err != nil {
		return nil, err
	}
	c, ok := b.Categorias[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Categoría no encontrada")
	}
	cp := *c
	return &cp, nil
}

func (b *Backend) CrearCategoria(_ context.Context, cred entity.Credenciales, in dto.CategoriaRequest) (*entity.Categoria, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CrearCategoria"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	b.siguiente++
	c := &entity.Categoria{ID: b.siguiente, Nombre: in.Nombre, Descripcion: in.Descripcion}
	b.Categorias[c.ID] = c
	cp := *c
	return &cp, nil
}

func (b *Backend) ActualizarCategoria(_ context.Context, cred entity.Credenciales, id int64, in dto.CategoriaRequest) (*entity.Categoria, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ActualizarCategoria"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	c, ok := b.Categorias[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Categoría no encontrada")
	}
	c.Nombre, c.Descripcion = in.Nombre, in.Descripcion
	cp := *c
	return &cp, nil
}

func (b *Backend) EliminarCategoria(_ context.Context, cred entity.Credenciales, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("EliminarCategoria"); err != nil {
		return err
	}
	if _, err := b.autenticar(cred); err != nil {
		return err
	}
	if _, ok := b.Categorias[id]; !ok {
		return Error(http.StatusNotFound, "Categoría no encontrada")
	}
	delete(b.Categorias, id)
	return nil
}

func (b *Backend) ListarProductos(_ context.Context, f dto.ProductoFiltros) (*dto.ProductoListResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ListarProductos"); err != nil {
		return nil, err
	}
	out := &dto.ProductoListResponse{Productos: []entity.Producto{}}
	for _, p := range b.Productos {
		if f.Disponible != nil && p.Disponible != *f.Disponible {
			continue
		}
		out.Productos = append(out.Productos, *p)
	}
	sort.Slice(out.Productos, func(i, j int) bool { return out.Productos[i].ID < out.Productos[j].ID })
	if f.Limit > 0 && len(out.Productos) > f.Limit {
		out.Productos = out.Productos[:f.Limit]
	}
	return out, nil
}

func (b *Backend) ObtenerProducto(_ context.Context, id int64) (*entity.Producto, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerProducto"); err != nil {
		return nil, err
	}
	p, ok := b.Productos[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Producto no encontrado")
	}
	cp := *p
	return &cp, nil
}

func (b *Backend) BuscarProductos(_ context.Context, q string) ([]entity.Producto, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("BuscarProductos"); err != nil {
		return nil, err
	}
	out := []entity.Producto{}
	for _, p := range b.Productos {
		if strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(q)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) guardarProducto(cred entity.Credenciales, metodo string, id int64, in dto.ProductoRequest) (*entity.Producto, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar(metodo); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	if id == 0 {
		b.siguiente++
		id = b.siguiente
	} else if _, ok := b.Productos[id]; !ok {
		return nil, Error(http.StatusNotFound, "Producto no encontrado")
	}
	p := &entity.Producto{ID: id, Nombre: in.Nombre, Descripcion: in.Descripcion, Precio: in.Precio, Stock: in.Stock, Disponible: in.Disponible}
	if in.ImagenURL != "" {
		u := in.ImagenURL
		p.ImagenURL = &u
	}
	b.Productos[id] = p
	cp := *p
	return &cp, nil
}

func (b *Backend) CrearProducto(_ context.Context, cred entity.Credenciales, in dto.ProductoRequest) (*entity.Producto, error) {
	return b.guardarProducto(cred, "CrearProducto", 0, in)
}

func (b *Backend) ActualizarProducto(_ context.Context, cred entity.Credenciales, id int64, in dto.ProductoRequest) (*entity.Producto, error) {
	return b.guardarProducto(cred, "ActualizarProducto", id, in)
}

func (b *Backend) EliminarProducto(_ context.Context, cred entity.Credenciales, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("EliminarProducto"); err != nil {
		return err
	}
	if _, err := b.autenticar(cred); err != nil {
		return err
	}
	if _, ok := b.Productos[id]; !ok {
		return Error(http.StatusNotFound, "Producto no encontrado")
	}
	delete(b.Productos, id)
	return nil
}

func (b *Backend) ActualizarStock(_ context.Context, cred entity.Credenciales, id int64, stock int) (*entity.Producto, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ActualizarStock"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	p, ok := b.Productos[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Producto no encontrado")
	}
	p.Stock = stock
	cp := *p
	return &cp, nil
}

func (b *Backend) VerificarStock(_ context.Context, items []dto.StockCheckItem) (*dto.StockCheckResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("VerificarStock"); err != nil {
		return nil, err
	}
	out := &dto.StockCheckResponse{Disponible: true}
	for _, it := range items {
		stock := 0
		if p, ok := b.Productos[it.ID]; ok {
			stock = p.Stock
		}
		disp := stock >= it.Cantidad
		out.Disponible = out.Disponible && disp
		out.Productos = append(out.Productos, struct {
			ID                 int64 `json:"id"`
			Disponible         bool  `json:"disponible"`
			StockActual        int   `json:"stock_actual"`
			CantidadSolicitada int   `json:"cantidad_solicitada"`
		}{it.ID, disp, stock, it.Cantidad})
	}
	return out, nil
}

func (b *Backend) SubirImagen(_ context.Context, cred entity.Credenciales, nombre, _ string, r io.Reader) (*dto.ImagenSubida, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("SubirImagen"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	n, _ := io.Copy(io.Discard, r)
	return &dto.ImagenSubida{URL: "https://cdn.test/" + nombre, FileName: nombre, Size: n}, nil
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

func (b *Backend) ListarOrdenes(_ context.Context, cred entity.Credenciales, p dto.OrdenesParams) (*dto.OrdenesPaginadas, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ListarOrdenes"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	ordenes := []entity.Orden{}
	for _, o := range b.Ordenes {
		if p.Estado != "" && p.Estado != "todas" && string(o.Estado) != p.Estado {
			continue
		}
		ordenes = append(ordenes, *o)
	}
	sort.Slice(ordenes, func(i, j int) bool {
		if p.SortOrder == "asc" {
			return ordenes[i].ID < ordenes[j].ID
		}
		return ordenes[i].ID > ordenes[j].ID
	})
	return &dto.OrdenesPaginadas{
		Ordenes:    ordenes,
		Paginacion: dto.PaginacionOrdenes{Page: p.Page, Limit: p.Limit, Total: len(ordenes), TotalPages: 1},
	}, nil
}

func (b *Backend) ObtenerOrden(_ context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ObtenerOrden"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	o, ok := b.Ordenes[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Orden no encontrada")
	}
	cp := *o
	return &cp, nil
}

func (b *Backend) CrearOrden(_ context.Context, cred entity.Credenciales, in dto.CrearOrdenRequest) (*entity.Orden, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CrearOrden"); err != nil {
		return nil, err
	}
	a, err := b.autenticar(cred)
	if err != nil {
		return nil, err
	}
	b.siguiente++
	id := a.ID
	o := &entity.Orden{ID: b.siguiente, Cliente: in.Cliente, Telefono: in.Telefono, Direccion: in.Direccion, Notas: in.Notas, Estado: entity.EstadoPendiente, AdminID: &id, AdminUsuario: a.Usuario}
	for _, it := range in.Productos {
		if p, ok := b.Productos[it.ProductoID]; ok {
			sub := p.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
			o.Detalles = append(o.Detalles, entity.DetalleOrden{ProductoID: p.ID, ProductoNombre: p.Nombre, Cantidad: it.Cantidad, PrecioUnitario: p.Precio, Subtotal: sub})
			o.Total = o.Total.Add(sub)
		}
	}
	b.Ordenes[o.ID] = o
	cp := *o
	return &cp, nil
}

func (b *Backend) ActualizarOrden(_ context.Context, cred entity.Credenciales, id int64, in dto.ActualizarOrdenRequest) (*entity.Orden, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ActualizarOrden"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	o, ok := b.Ordenes[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Orden no encontrada")
	}
	if in.Cliente != nil {
		o.Cliente = *in.Cliente
	}
	if in.Telefono != nil {
		o.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		o.Direccion = *in.Direccion
	}
	if in.Notas != nil {
		o.Notas = *in.Notas
	}
	cp := *o
	return &cp, nil
}

func (b *Backend) CambiarEstado(_ context.Context, cred entity.Credenciales, id int64, nuevo entity.EstadoOrden) (*entity.Orden, error) {
	b.mu.Lock()
	hook := b.AntesDeCambiarEstado
	b.mu.Unlock()
	if hook != nil {
		hook()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CambiarEstado"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	o, ok := b.Ordenes[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Orden no encontrada")
	}
	o.Estado = nuevo
	cp := *o
	return &cp, nil
}

func (b *Backend) CancelarOrden(_ context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("CancelarOrden"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	o, ok := b.Ordenes[id]
	if !ok {
		return nil, Error(http.StatusNotFound, "Orden no encontrada")
	}
	o.Estado = entity.EstadoCancelado
	cp := *o
	return &cp, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (b *Backend) General(_ context.Context, cred entity.Credenciales, _, _ int) (*dto.APIDashboardGeneral, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("General"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	if b.DatosGeneral == nil {
		return &dto.APIDashboardGeneral{}, nil
	}
	return b.DatosGeneral, nil
}

func (b *Backend) VentasPeriodo(_ context.Context, cred entity.Credenciales, _, _ int, tipo string) (*dto.APIVentasPeriodo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	metodo := "VentasPeriodo:" + tipo
	if err := b.entrar(metodo); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	src := b.DatosMensual
	if tipo == "diario" {
		src = b.DatosDiario
	}
	if src == nil {
		return &dto.APIVentasPeriodo{}, nil
	}
	return src, nil
}

func (b *Backend) TopProductos(_ context.Context, cred entity.Credenciales, _, _, _ int) (*dto.APITopProductos, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("TopProductos"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	if b.DatosTop == nil {
		return &dto.APITopProductos{}, nil
	}
	return b.DatosTop, nil
}

func (b *Backend) AnalisisCategorias(_ context.Context, cred entity.Credenciales, _, _ int) (*dto.APIAnalisisCategorias, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("AnalisisCategorias"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	if b.DatosAnalisis == nil {
		return &dto.APIAnalisisCategorias{}, nil
	}
	return b.DatosAnalisis, nil
}

func (b *Backend) ComparativaAnual(_ context.Context, cred entity.Credenciales, _, _ int) (*dto.APIComparativaAnual, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.entrar("ComparativaAnual"); err != nil {
		return nil, err
	}
	if _, err := b.autenticar(cred); err != nil {
		return nil, err
	}
	if b.DatosComparativa == nil {
		return &dto.APIComparativaAnual{}, nil
	}
	return b.DatosComparativa, nil
}
