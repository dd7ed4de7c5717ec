package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

type MesaService interface {
	CrearMesa(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error)
	ActualizarMesa(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error)
	DesactivarMesa(ctx context.Context, id uuid.UUID) error
	ListarMesas(ctx context.Context) ([]dto.MesaResponse, error)
}

type mesaService struct {
	mesas repository.MesaRepository
}

func NewMesaService(mesas repository.MesaRepository) MesaService {
	return &mesaService{mesas: mesas}
}

func (s *mesaService) CrearMesa(ctx context.Context, req dto.CrearMesaRequest) (*dto.MesaResponse, error) {
	capacidad := req.Capacidad
	if capacidad == 0 {
		capacidad = 4
	}
	mesa := &model.Mesa{
		Numero:      req.Numero,
		Descripcion: req.Descripcion,
		Capacidad:   capacidad,
		Activa:      true,
	}
	if err := s.mesas.Create(ctx, mesa); err != nil {
		return nil, err
	}
	resp := mesaToResponse(mesa)
	return &resp, nil
}

func (s *mesaService) ActualizarMesa(ctx context.Context, id uuid.UUID, req dto.ActualizarMesaRequest) (*dto.MesaResponse, error) {
	mesa, err := s.mesas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if req.Descripcion != nil {
		mesa.Descripcion = *req.Descripcion
	}
	if req.Capacidad != nil {
		mesa.Capacidad = *req.Capacidad
	}
	if err := s.mesas.Update(ctx, mesa); err != nil {
		return nil, err
	}
	resp := mesaToResponse(mesa)
	return &resp, nil
}

func (s *mesaService) DesactivarMesa(ctx context.Context, id uuid.UUID) error {
	mesa, err := s.mesas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	mesa.Activa = false
	return s.mesas.Update(ctx, mesa)
}

func (s *mesaService) ListarMesas(ctx context.Context) ([]dto.MesaResponse, error) {
	mesas, err := s.mesas.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		out = append(out, mesaToResponse(&mesas[i]))
	}
	return out, nil
}

func mesaToResponse(m *model.Mesa) dto.MesaResponse {
	return dto.MesaResponse{
		ID:          m.ID.String(),
		Numero:      m.Numero,
		Descripcion: m.Descripcion,
		Capacidad:   m.Capacidad,
		Activa:      m.Activa,
	}
}
