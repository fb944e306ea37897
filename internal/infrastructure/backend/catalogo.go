package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// ── Categorías ────────────────────────────────────────────────────────────────

// ListarCategorias GET /api/categorias (público).
func (c *Client) ListarCategorias(ctx context.Context, f dto.CategoriaFiltros) (*dto.CategoriaListResponse, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/categorias",
		query:    q,
		fallback: "Error obteniendo categorías",
	})
	if err != nil {
		return nil, err
	}
	var out dto.CategoriaListResponse
	if err := extraer(raw, "", &out); err != nil {
		return nil, err
	}
	if out.Categorias == nil {
		out.Categorias = []entity.Categoria{}
	}
	return &out, nil
}

// ObtenerCategoria GET /api/categorias/:id (público).
func (c *Client) ObtenerCategoria(ctx context.Context, id int64) (*entity.Categoria, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     ruta("/api/categorias/%d", id),
		fallback: "Error obteniendo categoría",
		mensajes: map[int]string{http.StatusNotFound: "Categoría no encontrada"},
	})
	if err != nil {
		return nil, err
	}
	var cat entity.Categoria
	if err := extraer(raw, "categoria", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CrearCategoria POST /api/categorias.
func (c *Client) CrearCategoria(ctx context.Context, cred entity.Credenciales, in dto.CategoriaRequest) (*entity.Categoria, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPost,
		ruta:     "/api/categorias",
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error creando categoría",
		mensajes: map[int]string{http.StatusConflict: "Ya existe una categoría con ese nombre"},
	})
	if err != nil {
		return nil, err
	}
	var cat entity.Categoria
	if err := extraer(raw, "categoria", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// ActualizarCategoria PUT /api/categorias/:id.
func (c *Client) ActualizarCategoria(ctx context.Context, cred entity.Credenciales, id int64, in dto.CategoriaRequest) (*entity.Categoria, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPut,
		ruta:     ruta("/api/categorias/%d", id),
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error actualizando categoría",
		mensajes: map[int]string{
			http.StatusNotFound: "Categoría no encontrada",
			http.StatusConflict: "Ya existe otra categoría con ese nombre",
		},
	})
	if err != nil {
		return nil, err
	}
	var cat entity.Categoria
	if err := extraer(raw, "categoria", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// EliminarCategoria DELETE /api/categorias/:id.
func (c *Client) EliminarCategoria(ctx context.Context, cred entity.Credenciales, id int64) error {
	_, err := c.hacer(ctx, peticion{
		metodo:   http.MethodDelete,
		ruta:     ruta("/api/categorias/%d", id),
		cred:     &cred,
		fallback: "Error eliminando categoría",
		mensajes: map[int]string{
			http.StatusNotFound: "Categoría no encontrada",
			http.StatusConflict: "No se puede eliminar la categoría porque tiene productos asociados",
		},
	})
	return err
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ListarProductos GET /api/productos (público, siempre con categorías).
func (c *Client) ListarProductos(ctx context.Context, f dto.ProductoFiltros) (*dto.ProductoListResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Categoria > 0 {
		q.Set("categoria", strconv.FormatInt(f.Categoria, 10))
	}
	if f.Disponible != nil {
		q.Set("disponible", strconv.FormatBool(*f.Disponible))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	q.Set("include_categories", "true")

	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/productos",
		query:    q,
		fallback: "Error al obtener productos",
	})
	if err != nil {
		return nil, err
	}
	var out dto.ProductoListResponse
	if err := extraer(raw, "", &out); err != nil {
		return nil, err
	}
	if out.Productos == nil {
		out.Productos = []entity.Producto{}
	}
	return &out, nil
}

// ObtenerProducto GET /api/productos/:id (público).
func (c *Client) ObtenerProducto(ctx context.Context, id int64) (*entity.Producto, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     ruta("/api/productos/%d", id),
		fallback: "Error al obtener producto",
		mensajes: map[int]string{http.StatusNotFound: "Producto no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	var p entity.Producto
	if err := extraer(raw, "producto", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// BuscarProductos GET /api/productos/search?q= (público).
func (c *Client) BuscarProductos(ctx context.Context, q string) ([]entity.Producto, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/productos/search",
		query:    url.Values{"q": {q}},
		fallback: "Error en la búsqueda",
	})
	if err != nil {
		return nil, err
	}
	out := []entity.Producto{}
	if err := extraer(raw, "productos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CrearProducto POST /api/productos.
func (c *Client) CrearProducto(ctx context.Context, cred entity.Credenciales, in dto.ProductoRequest) (*entity.Producto, error) {
	return c.guardarProducto(ctx, cred, http.MethodPost, "/api/productos", in, "Error al crear producto")
}

// ActualizarProducto PUT /api/productos/:id.
func (c *Client) ActualizarProducto(ctx context.Context, cred entity.Credenciales, id int64, in dto.ProductoRequest) (*entity.Producto, error) {
	return c.guardarProducto(ctx, cred, http.MethodPut, ruta("/api/productos/%d", id), in, "Error al actualizar producto")
}

func (c *Client) guardarProducto(ctx context.Context, cred entity.Credenciales, metodo, r string, in dto.ProductoRequest, fallback string) (*entity.Producto, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   metodo,
		ruta:     r,
		cuerpo:   in,
		cred:     &cred,
		fallback: fallback,
		mensajes: map[int]string{http.StatusNotFound: "Producto no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	var p entity.Producto
	if err := extraer(raw, "producto", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EliminarProducto DELETE /api/productos/:id.
func (c *Client) EliminarProducto(ctx context.Context, cred entity.Credenciales, id int64) error {
	_, err := c.hacer(ctx, peticion{
		metodo:   http.MethodDelete,
		ruta:     ruta("/api/productos/%d", id),
		cred:     &cred,
		fallback: "Error al eliminar producto",
		mensajes: map[int]string{http.StatusNotFound: "Producto no encontrado"},
	})
	return err
}

// ActualizarStock PATCH /api/productos/:id/stock.
func (c *Client) ActualizarStock(ctx context.Context, cred entity.Credenciales, id int64, stock int) (*entity.Producto, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPatch,
		ruta:     ruta("/api/productos/%d/stock", id),
		cuerpo:   dto.StockRequest{Stock: stock},
		cred:     &cred,
		fallback: "Error al actualizar stock",
		mensajes: map[int]string{http.StatusNotFound: "Producto no encontrado"},
	})
	if err != nil {
		return nil, err
	}
	var p entity.Producto
	if err := extraer(raw, "producto", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// VerificarStock POST /api/productos/check-stock (público).
func (c *Client) VerificarStock(ctx context.Context, items []dto.StockCheckItem) (*dto.StockCheckResponse, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPost,
		ruta:     "/api/productos/check-stock",
		cuerpo:   map[string]any{"productos": items},
		fallback: "Error al verificar stock",
	})
	if err != nil {
		return nil, err
	}
	var out dto.StockCheckResponse
	if err := extraer(raw, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Uploads ───────────────────────────────────────────────────────────────────

// SubirImagen POST /api/uploads/image (multipart, campo "image").
func (c *Client) SubirImagen(ctx context.Context, cred entity.Credenciales, nombre, contentType string, r io.Reader) (*dto.ImagenSubida, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, nombre))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("backend: crear multipart: %w", err)
	}
	size, err := io.Copy(part, r)
	if err != nil {
		return nil, fmt.Errorf("backend: copiar imagen: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	raw, err := c.hacer(ctx, peticion{
		metodo:      http.MethodPost,
		ruta:        "/api/uploads/image",
		raw:         &buf,
		contentType: mw.FormDataContentType(),
		cred:        &cred,
		fallback:    "Error al subir imagen",
	})
	if err != nil {
		return nil, err
	}

	var cuerpo any
	if err := json.Unmarshal(raw, &cuerpo); err != nil {
		return nil, &domain.BackendError{Clase: domain.ErrBackend, Mensaje: "Respuesta del servidor no es JSON válido", Causa: err}
	}
	u := buscarURL(cuerpo)
	if u == "" {
		return nil, &domain.BackendError{Clase: domain.ErrBackend, Mensaje: "Error en la respuesta del servidor: no se recibió URL de imagen"}
	}
	return &dto.ImagenSubida{URL: u, FileName: nombre, Size: size}, nil
}

// buscarURL localiza la URL pública de la imagen: data.url, data.publicUrl,
// data.image.{publicUrl,url}, url, y por último cualquier clave que contenga "url".
func buscarURL(v any) string {
	raiz, _ := v.(map[string]any)
	data, _ := raiz["data"].(map[string]any)
	image, _ := data["image"].(map[string]any)
	for _, candidato := range []any{data["url"], data["publicUrl"], image["publicUrl"], image["url"], raiz["url"]} {
		if s, ok := candidato.(string); ok && s != "" {
			return s
		}
	}
	return buscarURLRecursivo(v)
}

func buscarURLRecursivo(v any) string {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "http") {
			return t
		}
	case map[string]any:
		claves := make([]string, 0, len(t))
		for k := range t {
			claves = append(claves, k)
		}
		sort.Strings(claves)
		for _, k := range claves {
			if s, ok := t[k].(string); ok && strings.Contains(strings.ToLower(k), "url") && strings.HasPrefix(s, "http") {
				return s
			}
		}
		for _, k := range claves {
			if s := buscarURLRecursivo(t[k]); s != "" {
				return s
			}
		}
	case []any:
		for _, e := range t {
			if s := buscarURLRecursivo(e); s != "" {
				return s
			}
		}
	}
	return ""
}
