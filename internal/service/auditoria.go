package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// registrarAuditoria deja constancia de una acción sensible. Un fallo del
// registro nunca aborta la operación principal: se loguea y se sigue.
func registrarAuditoria(ctx context.Context, repo repository.AuditoriaRepository, usuario, descripcion string) {
	if repo == nil {
		return
	}
	err := repo.Create(ctx, &model.RegistroAuditoria{
		Usuario:     usuario,
		Descripcion: descripcion,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("usuario", usuario).
			Str("descripcion", descripcion).
			Msg("no se pudo registrar auditoría")
	}
}
