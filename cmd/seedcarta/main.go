// seedcarta carga una carta de ejemplo: mesas, ingredientes, platos con sus
// recetas y la configuración de correlativos. Pensado para entornos de
// desarrollo y demo.
package main

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"comandapos/internal/config"
	"comandapos/internal/infra"
	"comandapos/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	configuracion := model.ConfiguracionDefault()
	if err := db.Save(configuracion).Error; err != nil {
		log.Fatal().Err(err).Msg("no se pudo guardar la configuración")
	}

	for n := 1; n <= 10; n++ {
		mesa := model.Mesa{Numero: n, Capacidad: 4, Activa: true}
		if err := db.Where("numero = ?", n).FirstOrCreate(&mesa).Error; err != nil {
			log.Fatal().Err(err).Int("mesa", n).Msg("no se pudo crear la mesa")
		}
	}

	type lineaSeed struct {
		ingrediente string
		cantidad    string
	}
	type platoSeed struct {
		nombre    string
		categoria string
		precio    string
		canal     string
		receta    []lineaSeed
	}

	ingredientes := map[string]model.Ingrediente{}
	for _, ing := range []model.Ingrediente{
		{Descripcion: "Carne picada", Cantidad: dec("8000"), Unidad: "g", StockMinimo: dec("1500"), Activo: true},
		{Descripcion: "Pan de hamburguesa", Cantidad: dec("60"), Unidad: "unidad", StockMinimo: dec("12"), Activo: true},
		{Descripcion: "Queso cheddar", Cantidad: dec("2000"), Unidad: "g", StockMinimo: dec("400"), Activo: true},
		{Descripcion: "Papas", Cantidad: dec("12000"), Unidad: "g", StockMinimo: dec("2000"), Activo: true},
		{Descripcion: "Cerveza tirada", Cantidad: dec("30000"), Unidad: "ml", StockMinimo: dec("5000"), Activo: true},
		{Descripcion: "Gin", Cantidad: dec("3000"), Unidad: "ml", StockMinimo: dec("500"), Activo: true},
		{Descripcion: "Agua tónica", Cantidad: dec("6000"), Unidad: "ml", StockMinimo: dec("1000"), Activo: true},
	} {
		registro := ing
		if err := db.Where("descripcion = ?", ing.Descripcion).FirstOrCreate(&registro).Error; err != nil {
			log.Fatal().Err(err).Str("ingrediente", ing.Descripcion).Msg("no se pudo crear el ingrediente")
		}
		ingredientes[ing.Descripcion] = registro
	}

	platos := []platoSeed{
		{"Hamburguesa completa", "principales", "5400", model.CanalCocina, []lineaSeed{
			{"Carne picada", "180"}, {"Pan de hamburguesa", "1"}, {"Queso cheddar", "40"},
		}},
		{"Papas fritas", "entradas", "2800", model.CanalCocina, []lineaSeed{
			{"Papas", "300"},
		}},
		{"Pinta de cerveza", "bebidas", "2200", model.CanalBar, []lineaSeed{
			{"Cerveza tirada", "500"},
		}},
		{"Gin tonic", "bebidas", "3500", model.CanalBar, []lineaSeed{
			{"Gin", "60"}, {"Agua tónica", "200"},
		}},
		// Sin receta a propósito: se vende sin descontar inventario.
		{"Menú del día", "principales", "4800", model.CanalCocina, nil},
	}

	for _, ps := range platos {
		plato := model.Plato{
			Nombre:    ps.nombre,
			Categoria: ps.categoria,
			Precio:    dec(ps.precio),
			Canal:     ps.canal,
			Activo:    true,
		}
		if err := db.Where("nombre = ?", ps.nombre).FirstOrCreate(&plato).Error; err != nil {
			log.Fatal().Err(err).Str("plato", ps.nombre).Msg("no se pudo crear el plato")
		}
		for _, linea := range ps.receta {
			ing := ingredientes[linea.ingrediente]
			receta := model.RecetaIngrediente{
				PlatoID:           plato.ID,
				IngredienteID:     ing.ID,
				CantidadPorUnidad: dec(linea.cantidad),
			}
			err := db.Where("plato_id = ? AND ingrediente_id = ?", plato.ID, ing.ID).
				FirstOrCreate(&receta).Error
			if err != nil {
				log.Fatal().Err(err).Str("plato", ps.nombre).Msg("no se pudo crear la receta")
			}
		}
	}

	log.Info().Msg("carta de ejemplo cargada")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
