// setup genera las credenciales Argon2id del administrador y siembra la base de blockvisor-api
// con la organización inicial, usuarios, tokens de aprovisionamiento, región y matriz de permisos.
//
// Uso: go run ./cmd/setup -f Ada -l Lovelace -e ada@example.com [-p password | --password-file ruta]
// Sin -p ni --password-file el password se pide por terminal. La conexión se configura con DB_* o DATABASE_URL.
// Volver a ejecutarlo sobre una base ya sembrada no escribe nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/blockvisor-setup/internal/application/bootstrap"
	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
	"github.com/jhoicas/blockvisor-setup/internal/domain"
	"github.com/jhoicas/blockvisor-setup/internal/infrastructure/fsmarker"
	"github.com/jhoicas/blockvisor-setup/internal/infrastructure/postgres"
	"github.com/jhoicas/blockvisor-setup/internal/interfaces/cli"
	"github.com/jhoicas/blockvisor-setup/internal/seeddata"
	"github.com/jhoicas/blockvisor-setup/pkg/config"
	"github.com/jhoicas/blockvisor-setup/pkg/logger"
	"github.com/jhoicas/blockvisor-setup/pkg/passhash"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		return 2
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	opts, err := cli.ParseSetupFlags(args, cfg.Seed, os.Stderr)
	if err != nil {
		return 2
	}
	req, err := cli.CollectSeedRequest(opts, cli.NewTerminalPrompter())
	if err != nil {
		log.Error().Err(err).Msg("entrada inválida")
		return exitCode(err)
	}

	dataset, err := seeddata.Load()
	if err != nil {
		log.Error().Err(err).Msg("matriz rol-permiso embebida inválida")
		return 1
	}
	log.Debug().Strs("roles", dataset.Roles()).Int("permisos", dataset.Len()).Msg("matriz rol-permiso cargada")

	// Se valida antes de conectar: una entrada inválida no debe quedar oculta detrás de un fallo de red.
	if err := bootstrap.ValidateRequest(req, dataset); err != nil {
		log.Error().Err(err).Msg("entrada inválida")
		return exitCode(err)
	}

	seedOpts := []bootstrap.Option{
		bootstrap.WithLogger(log),
		bootstrap.WithTimeout(cfg.Seed.Timeout),
	}
	markerFound := false
	if cfg.Seed.MarkerPath != "" {
		marker := fsmarker.New(cfg.Seed.MarkerPath)
		if markerFound, err = marker.Exists(); err != nil {
			log.Warn().Err(err).Str("marker", cfg.Seed.MarkerPath).Msg("no se pudo consultar el marcador")
		}
		seedOpts = append(seedOpts, bootstrap.WithMarker(marker))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Str("host", cfg.DB.Host).Msg("conexión a PostgreSQL")
		return exitCode(err)
	}
	defer pool.Close()

	uc := bootstrap.NewSeedUseCase(postgres.NewTxRunner(pool), passhash.NewHasher(passhash.DefaultParams, nil), dataset, seedOpts...)

	// Seed registra el motivo de cualquier fallo.
	res, err := uc.Seed(ctx, req)
	if err != nil {
		return exitCode(err)
	}
	if markerFound && res.Status == dto.SeedStatusCompleted {
		log.Info().Str("marker", cfg.Seed.MarkerPath).Msg("el marcador existía pero la base no estaba sembrada")
	}
	printSummary(res)
	return 0
}

// printSummary escribe en stdout los secretos generados; es la única vez que se muestran.
func printSummary(res *dto.SeedResult) {
	if res.Status == dto.SeedStatusAlreadySeeded {
		fmt.Println("La base ya estaba sembrada; no se realizaron cambios.")
		return
	}
	fmt.Printf("Organización:        %s\n", res.OrgID)
	fmt.Printf("Administrador:       %s (%s)\n", res.AdminEmail, res.AdminUserID)
	fmt.Printf("Token admin:         %s\n", res.AdminToken)
	fmt.Printf("Usuario de prueba:   %s (%s)\n", res.TestUserEmail, res.TestUserID)
	fmt.Printf("Token de prueba:     %s\n", res.TestUserToken)
	if res.GeneratedTestPassword != "" {
		fmt.Printf("Password de prueba:  %s\n", res.GeneratedTestPassword)
	}
	fmt.Printf("Permisos sembrados:  %d\n", res.PermissionCount)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return 2
	case errors.Is(err, domain.ErrConnection):
		return 3
	case errors.Is(err, domain.ErrTimeout):
		return 4
	default:
		return 1
	}
}
