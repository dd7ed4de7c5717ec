// seedusuario crea un usuario directamente en la base, pensado para el alta
// inicial del administrador.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"comandapos/internal/config"
	"comandapos/internal/infra"
	"comandapos/internal/model"
)

func main() {
	username := flag.String("username", "", "nombre de usuario")
	nombre := flag.String("nombre", "", "nombre completo")
	password := flag.String("password", "", "contraseña")
	rol := flag.String("rol", "administrador", "mesero|cocina|bar|cajero|administrador")
	flag.Parse()

	if *username == "" || *password == "" || *nombre == "" {
		flag.Usage()
		os.Exit(1)
	}
	switch *rol {
	case "mesero", "cocina", "bar", "cajero", "administrador":
	default:
		log.Fatal().Str("rol", *rol).Msg("rol desconocido")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo hashear la contraseña")
	}

	usuario := &model.Usuario{
		Username:     *username,
		Nombre:       *nombre,
		PasswordHash: string(hash),
		Rol:          *rol,
		Activo:       true,
	}
	if err := db.Create(usuario).Error; err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el usuario")
	}
	log.Info().Str("username", *username).Str("rol", *rol).Msg("usuario creado")
}
