package infra

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"comandapos/internal/model"
)

// NewDatabase abre el pool de Postgres, migra el esquema y aplica los parches
// idempotentes. TranslateError habilita gorm.ErrDuplicatedKey, del que dependen
// los reintentos de correlativos.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Usuario{},
		&model.Mesa{},
		&model.Ingrediente{},
		&model.Plato{},
		&model.RecetaIngrediente{},
		&model.Orden{},
		&model.OrdenItem{},
		&model.Ticket{},
		&model.TicketItem{},
		&model.TicketPago{},
		&model.MovimientoInventario{},
		&model.SolicitudAnulacionItem{},
		&model.SolicitudAnulacionOrden{},
		&model.CierreCaja{},
		&model.Configuracion{},
		&model.RegistroAuditoria{},
	)
	if err != nil {
		return err
	}
	return applySchemaPatches(db)
}

// applySchemaPatches cubre lo que AutoMigrate no expresa. Cada parche es
// idempotente para que el arranque repetido sea inocuo.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// gen_random_uuid() vive en pgcrypto en Postgres < 13.
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		// Índice parcial para el tablero: solo items vivos sin despachar.
		`CREATE INDEX IF NOT EXISTS idx_orden_items_tablero
		   ON orden_items (orden_id)
		   WHERE NOT anulado AND NOT en_proceso_anulacion`,
	}
	for _, patch := range patches {
		if err := db.Exec(patch).Error; err != nil {
			log.Warn().Err(err).Str("patch", patch).Msg("parche de esquema falló")
		}
	}
	return nil
}
