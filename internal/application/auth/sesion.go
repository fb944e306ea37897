package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// Contexto instantánea inmutable de la sesión. Los consumidores la leen con
// Sesion.Actual y nunca la modifican.
type Contexto struct {
	Admin     *entity.Administrador
	Cargando  bool
	Evaluador permisos.Evaluador

	principal *Principal
}

// Autenticado informa si hay un principal verificado.
func (c Contexto) Autenticado() bool { return c.principal != nil }

// Principal devuelve el principal de la sesión o nil.
func (c Contexto) Principal() *Principal { return c.principal }

func contextoDe(p *Principal) Contexto {
	if p == nil {
		return Contexto{Evaluador: permisos.NuevoEvaluador(nil)}
	}
	admin := p.Admin
	return Contexto{Admin: &admin, Evaluador: p.Evaluador, principal: p}
}

// Sesion ranura del principal de la consola de terminal: restaura las credenciales
// guardadas, inicia y cierra sesión, y se invalida ante cualquier 401/403.
type Sesion struct {
	uc      *AuthUseCase
	almacen ports.AlmacenCredenciales
	log     zerolog.Logger

	mu     sync.Mutex
	actual Contexto
}

// NuevaSesion construye la sesión vacía (sin principal).
func NuevaSesion(uc *AuthUseCase, almacen ports.AlmacenCredenciales, log zerolog.Logger) *Sesion {
	return &Sesion{
		uc:      uc,
		almacen: almacen,
		log:     log.With().Str("component", "sesion").Logger(),
		actual:  contextoDe(nil),
	}
}

// Actual devuelve la instantánea vigente.
func (s *Sesion) Actual() Contexto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actual
}

func (s *Sesion) fijar(c Contexto) {
	s.mu.Lock()
	s.actual = c
	s.mu.Unlock()
}

func (s *Sesion) marcarCargando() {
	s.mu.Lock()
	s.actual.Cargando = true
	s.mu.Unlock()
}

// Restaurar verifica las credenciales guardadas al arrancar. Si el backend las
// rechaza se borran; ante un fallo de conexión se conservan para el próximo intento.
func (s *Sesion) Restaurar(ctx context.Context) error {
	cred, ok, err := s.almacen.Cargar()
	if err != nil {
		return err
	}
	if !ok {
		s.fijar(contextoDe(nil))
		return nil
	}
	s.marcarCargando()
	p, err := s.uc.Perfil(ctx, cred)
	if err != nil {
		s.fijar(contextoDe(nil))
		if errors.Is(err, domain.ErrSesionInvalida) || errors.Is(err, domain.ErrCredencialesInvalidas) || errors.Is(err, domain.ErrSinCredenciales) {
			s.borrar()
		}
		return err
	}
	s.fijar(contextoDe(p))
	return nil
}

// Iniciar hace login y guarda las credenciales en la ranura durable.
func (s *Sesion) Iniciar(ctx context.Context, cred entity.Credenciales) (Contexto, error) {
	s.marcarCargando()
	p, err := s.uc.Login(ctx, dto.LoginRequest{Usuario: cred.Usuario, Password: cred.Password})
	if err != nil {
		s.fijar(contextoDe(nil))
		return s.Actual(), err
	}
	if err := s.almacen.Guardar(p.Credenciales); err != nil {
		s.fijar(contextoDe(nil))
		return s.Actual(), err
	}
	c := contextoDe(p)
	s.fijar(c)
	return c, nil
}

// CambiarPassword cambia la contraseña y actualiza la copia guardada.
func (s *Sesion) CambiarPassword(ctx context.Context, in dto.CambiarPasswordRequest) error {
	p := s.Actual().Principal()
	if p == nil {
		return domain.ErrSinCredenciales
	}
	if err := s.uc.CambiarPassword(ctx, p, in); err != nil {
		return err
	}
	nuevo := *p
	nuevo.Credenciales.Password = in.PasswordNuevo
	if err := s.almacen.Guardar(nuevo.Credenciales); err != nil {
		return err
	}
	s.fijar(contextoDe(&nuevo))
	return nil
}

// Cerrar borra las credenciales y deja la sesión vacía.
func (s *Sesion) Cerrar() error {
	s.fijar(contextoDe(nil))
	return s.almacen.Borrar()
}

// Invalidar se registra como oyente global de 401/403 del cliente del backend.
func (s *Sesion) Invalidar() {
	s.log.Info().Msg("sesión invalidada por el backend")
	s.fijar(contextoDe(nil))
	s.borrar()
}

func (s *Sesion) borrar() {
	if err := s.almacen.Borrar(); err != nil {
		s.log.Warn().Err(err).Msg("no se pudieron borrar las credenciales guardadas")
	}
}
