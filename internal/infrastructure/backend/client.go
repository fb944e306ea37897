package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa todos los puertos del backend.
var _ ports.Backend = (*Client)(nil)

const (
	headerUsuario  = "x-admin-user"
	headerPassword = "x-admin-password"

	// Límite de lectura del cuerpo de respuesta (listados grandes incluidos).
	maxCuerpo = 8 << 20
)

// Config parámetros de conexión al backend REST.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// CacheDir directorio para la caché en disco de GETs públicos; vacío = caché en memoria.
	CacheDir string
}

// Client adaptador REST hacia el backend. Usa net/http y no guarda credenciales:
// cada llamada autenticada recibe las credenciales del principal que la origina.
type Client struct {
	baseURL string
	http    *http.Client // llamadas autenticadas, sin caché compartida
	publico *http.Client // GETs públicos del catálogo, con caché RFC 7234
	log     zerolog.Logger

	mu      sync.RWMutex
	oyentes []func()
}

// NewClient construye el cliente. Si Timeout es cero se usan 15 s.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if cfg.CacheDir != "" {
		cache = diskcache.New(cfg.CacheDir)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		publico: &http.Client{Timeout: timeout, Transport: httpcache.NewTransport(cache)},
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// AlInvalidarSesion registra fn para ser llamada cada vez que el backend responde 401/403
// a una llamada autenticada (la sesión ya no es válida).
func (c *Client) AlInvalidarSesion(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.oyentes = append(c.oyentes, fn)
}

func (c *Client) notificarInvalidacion() {
	c.mu.RLock()
	oyentes := make([]func(), len(c.oyentes))
	copy(oyentes, c.oyentes)
	c.mu.RUnlock()
	for _, fn := range oyentes {
		fn()
	}
}

// ── Petición genérica ─────────────────────────────────────────────────────────

type peticion struct {
	metodo string
	ruta   string
	query  url.Values

	cuerpo      any       // se serializa como JSON
	raw         io.Reader // alternativa a cuerpo (multipart)
	contentType string

	// nil = endpoint público (sin cabeceras y vía caché si es GET).
	cred *entity.Credenciales

	// fallback mensaje si el backend no incluye "error" en la respuesta.
	fallback string
	// mensajes por status que reemplazan al del backend (p. ej. 409 en categorías).
	mensajes map[int]string
	// clase401 reemplaza a ErrSesionInvalida en 401/403 y evita la invalidación global
	// (verificación de credenciales, cambio de contraseña).
	clase401   error
	mensaje401 string
}

// envelope forma común de las respuestas: {success, data, message} o {success:false, error, details}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
}

// hacer ejecuta la petición y devuelve el cuerpo crudo de una respuesta exitosa.
// Cualquier fallo sale como *domain.BackendError.
func (c *Client) hacer(ctx context.Context, p peticion) ([]byte, error) {
	if p.cred != nil && !p.cred.Completas() {
		return nil, &domain.BackendError{Clase: domain.ErrSinCredenciales, Mensaje: "No hay credenciales de autenticación"}
	}

	endpoint := c.baseURL + p.ruta
	if len(p.query) > 0 {
		endpoint += "?" + p.query.Encode()
	}

	var body io.Reader = p.raw
	contentType := p.contentType
	if p.cuerpo != nil {
		b, err := json.Marshal(p.cuerpo)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, p.metodo, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	cliente := c.http
	if p.cred != nil {
		req.Header.Set(headerUsuario, p.cred.Usuario)
		req.Header.Set(headerPassword, p.cred.Password)
	} else if p.metodo == http.MethodGet {
		cliente = c.publico
	}

	resp, err := cliente.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", p.metodo).Str("path", p.ruta).Msg("backend sin respuesta")
		return nil, errorConexion(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCuerpo))
	if err != nil {
		return nil, errorConexion(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		be := normalizar(resp.StatusCode, raw, p)
		if errorsIsSesion(be) && p.cred != nil {
			c.log.Info().Int("status", resp.StatusCode).Str("path", p.ruta).Msg("sesión rechazada por el backend")
			c.notificarInvalidacion()
		}
		return nil, be
	}

	// 2xx con success:false (p. ej. change-password).
	var env envelope
	if len(raw) > 0 && json.Unmarshal(raw, &env) == nil && env.Success != nil && !*env.Success {
		return nil, &domain.BackendError{
			Clase:    domain.ErrBackend,
			Status:   resp.StatusCode,
			Mensaje:  primero(env.Error, env.Message, p.fallback),
			Detalles: env.Details,
		}
	}
	return raw, nil
}

// extraer decodifica la entidad de una respuesta exitosa tolerando las variantes del
// backend: data.<clave>, data, <clave> o la raíz.
func extraer(raw []byte, clave string, dst any) error {
	var raiz map[string]json.RawMessage
	if err := json.Unmarshal(raw, &raiz); err != nil {
		// La raíz no es un objeto (p. ej. un arreglo): decodificar tal cual.
		return decodificar(raw, dst)
	}
	if data, ok := raiz["data"]; ok && !esNulo(data) {
		if clave != "" {
			var interior map[string]json.RawMessage
			if json.Unmarshal(data, &interior) == nil {
				if v, ok := interior[clave]; ok && !esNulo(v) {
					return decodificar(v, dst)
				}
			}
		}
		return decodificar(data, dst)
	}
	if clave != "" {
		if v, ok := raiz[clave]; ok && !esNulo(v) {
			return decodificar(v, dst)
		}
	}
	return decodificar(raw, dst)
}

func decodificar(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.BackendError{
			Clase:   domain.ErrBackend,
			Mensaje: "Respuesta inválida del servidor",
			Causa:   err,
		}
	}
	return nil
}

func esNulo(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func primero(valores ...string) string {
	for _, v := range valores {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func ruta(formato string, args ...any) string {
	return fmt.Sprintf(formato, args...)
}
