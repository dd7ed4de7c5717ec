package service

import (
	"gorm.io/gorm"

	"comandapos/internal/repository"
)

// SecuenciaService emite correlativos de orden, ticket y cierre. El próximo
// número es MAX(emitidos)+1, nunca por debajo del piso configurado. El índice
// único sobre cada columna de número detecta carreras; el llamador reintenta
// ante gorm.ErrDuplicatedKey.
type SecuenciaService interface {
	ProximoNumeroOrden(tx *gorm.DB) (int, error)
	ProximoNumeroTicket(tx *gorm.DB) (int, error)
	ProximoNumeroCierre(tx *gorm.DB) (int, error)
}

type secuenciaService struct {
	ordenes repository.OrdenRepository
	tickets repository.TicketRepository
	cierres repository.CierreRepository
	config  repository.ConfiguracionRepository
}

func NewSecuenciaService(
	ordenes repository.OrdenRepository,
	tickets repository.TicketRepository,
	cierres repository.CierreRepository,
	config repository.ConfiguracionRepository,
) SecuenciaService {
	return &secuenciaService{ordenes: ordenes, tickets: tickets, cierres: cierres, config: config}
}

func (s *secuenciaService) ProximoNumeroOrden(tx *gorm.DB) (int, error) {
	max, err := s.ordenes.MaxNumeroOrden(tx)
	if err != nil {
		return 0, err
	}
	cfg, err := s.config.GetTx(tx)
	if err != nil {
		return 0, err
	}
	return siguiente(max, cfg.NumeroOrdenInicial), nil
}

func (s *secuenciaService) ProximoNumeroTicket(tx *gorm.DB) (int, error) {
	max, err := s.tickets.MaxNumeroTicket(tx)
	if err != nil {
		return 0, err
	}
	cfg, err := s.config.GetTx(tx)
	if err != nil {
		return 0, err
	}
	return siguiente(max, cfg.NumeroTicketInicial), nil
}

func (s *secuenciaService) ProximoNumeroCierre(tx *gorm.DB) (int, error) {
	max, err := s.cierres.MaxNumeroCierre(tx)
	if err != nil {
		return 0, err
	}
	cfg, err := s.config.GetTx(tx)
	if err != nil {
		return 0, err
	}
	return siguiente(max, cfg.NumeroCierreInicial), nil
}

func siguiente(max, inicial int) int {
	n := max + 1
	if n < inicial {
		return inicial
	}
	return n
}
