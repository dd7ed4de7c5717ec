package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// cachePrecioPrefix agrupa las claves del caché de consulta de precios.
const cachePrecioPrefix = "carta:precio:"

// cachePrecioTTL acota cuánto vive una entrada; las mutaciones además
// invalidan explícitamente.
const cachePrecioTTL = 10 * time.Minute

type CartaService interface {
	CrearPlato(ctx context.Context, req dto.CrearPlatoRequest) (*dto.PlatoResponse, error)
	ActualizarPlato(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatoRequest) (*dto.PlatoResponse, error)
	DesactivarPlato(ctx context.Context, id uuid.UUID) error
	ObtenerPlato(ctx context.Context, id uuid.UUID) (*dto.PlatoResponse, error)
	ListarPlatos(ctx context.Context, filter dto.PlatoFilter) (*dto.PlatoListResponse, error)
	// DefinirReceta reemplaza la receta completa del plato.
	DefinirReceta(ctx context.Context, platoID uuid.UUID, req dto.DefinirRecetaRequest) (*dto.PlatoResponse, error)
	// ConsultaPrecio resuelve el precio de un plato con caché en Redis.
	ConsultaPrecio(ctx context.Context, platoID uuid.UUID) (*dto.ConsultaPrecioResponse, error)
}

type cartaService struct {
	platos       repository.PlatoRepository
	ingredientes repository.IngredienteRepository
	rdb          *redis.Client
}

func NewCartaService(platos repository.PlatoRepository, ingredientes repository.IngredienteRepository, rdb *redis.Client) CartaService {
	return &cartaService{platos: platos, ingredientes: ingredientes, rdb: rdb}
}

func (s *cartaService) CrearPlato(ctx context.Context, req dto.CrearPlatoRequest) (*dto.PlatoResponse, error) {
	plato := &model.Plato{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Precio:      req.Precio,
		Canal:       req.Canal,
		Activo:      true,
	}
	if err := s.platos.Create(ctx, plato); err != nil {
		return nil, err
	}
	resp := platoToResponse(plato)
	return &resp, nil
}

func (s *cartaService) ActualizarPlato(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatoRequest) (*dto.PlatoResponse, error) {
	plato, err := s.platos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		plato.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		plato.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		plato.Categoria = *req.Categoria
	}
	if req.Precio != nil {
		plato.Precio = *req.Precio
	}
	if req.Canal != nil {
		plato.Canal = *req.Canal
	}
	if err := s.platos.Update(ctx, plato); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx, id)
	resp := platoToResponse(plato)
	return &resp, nil
}

func (s *cartaService) DesactivarPlato(ctx context.Context, id uuid.UUID) error {
	plato, err := s.platos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	plato.Activo = false
	if err := s.platos.Update(ctx, plato); err != nil {
		return err
	}
	s.invalidarCache(ctx, id)
	return nil
}

func (s *cartaService) ObtenerPlato(ctx context.Context, id uuid.UUID) (*dto.PlatoResponse, error) {
	plato, err := s.platos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := platoToResponse(plato)
	return &resp, nil
}

func (s *cartaService) ListarPlatos(ctx context.Context, filter dto.PlatoFilter) (*dto.PlatoListResponse, error) {
	platos, total, err := s.platos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatoResponse, 0, len(platos))
	for i := range platos {
		out = append(out, platoToResponse(&platos[i]))
	}
	return &dto.PlatoListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *cartaService) DefinirReceta(ctx context.Context, platoID uuid.UUID, req dto.DefinirRecetaRequest) (*dto.PlatoResponse, error) {
	if _, err := s.platos.FindByID(ctx, platoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	lineas := make([]model.RecetaIngrediente, 0, len(req.Lineas))
	for i, l := range req.Lineas {
		if !l.CantidadPorUnidad.IsPositive() {
			return nil, fmt.Errorf("%w: la cantidad de la línea %d debe ser positiva", ErrValidacion, i)
		}
		ingredienteID, err := uuid.Parse(l.IngredienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: ingrediente_id inválido en la línea %d", ErrValidacion, i)
		}
		if _, err := s.ingredientes.FindByID(ctx, ingredienteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: ingrediente de la línea %d", ErrNoEncontrado, i)
			}
			return nil, err
		}
		lineas = append(lineas, model.RecetaIngrediente{
			PlatoID:           platoID,
			IngredienteID:     ingredienteID,
			CantidadPorUnidad: l.CantidadPorUnidad,
		})
	}

	err := runTx(ctx, s.platos.DB(), func(tx *gorm.DB) error {
		return s.platos.ReplaceRecetaTx(tx, platoID, lineas)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPlato(ctx, platoID)
}

func (s *cartaService) ConsultaPrecio(ctx context.Context, platoID uuid.UUID) (*dto.ConsultaPrecioResponse, error) {
	key := cachePrecioPrefix + platoID.String()
	if s.rdb != nil {
		if cached, err := s.rdb.HGetAll(ctx, key).Result(); err == nil && len(cached) > 0 {
			if precio, perr := decimalFromString(cached["precio"]); perr == nil {
				return &dto.ConsultaPrecioResponse{
					Nombre:    cached["nombre"],
					Precio:    precio,
					Categoria: cached["categoria"],
					Canal:     cached["canal"],
				}, nil
			}
		}
	}

	plato, err := s.platos.FindByID(ctx, platoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if !plato.Activo {
		return nil, ErrNoEncontrado
	}

	resp := &dto.ConsultaPrecioResponse{
		Nombre:    plato.Nombre,
		Precio:    plato.Precio,
		Categoria: plato.Categoria,
		Canal:     plato.Canal,
	}
	if s.rdb != nil {
		err := s.rdb.HSet(ctx, key,
			"nombre", resp.Nombre,
			"precio", resp.Precio.String(),
			"categoria", resp.Categoria,
			"canal", resp.Canal,
		).Err()
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo cachear el precio")
		} else {
			s.rdb.Expire(ctx, key, cachePrecioTTL)
		}
	}
	return resp, nil
}

func (s *cartaService) invalidarCache(ctx context.Context, platoID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cachePrecioPrefix+platoID.String()).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché de precios")
	}
}

func platoToResponse(p *model.Plato) dto.PlatoResponse {
	resp := dto.PlatoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Categoria:   p.Categoria,
		Precio:      p.Precio,
		Canal:       p.Canal,
		Activo:      p.Activo,
	}
	for _, linea := range p.Receta {
		lr := dto.LineaRecetaResponse{
			IngredienteID:     linea.IngredienteID.String(),
			CantidadPorUnidad: linea.CantidadPorUnidad,
		}
		if linea.Ingrediente != nil {
			lr.Ingrediente = linea.Ingrediente.Descripcion
			lr.Unidad = linea.Ingrediente.Unidad
		}
		resp.Receta = append(resp.Receta, lr)
	}
	return resp
}
