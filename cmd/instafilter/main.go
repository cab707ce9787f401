package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/app"
	"github.com/Fepozopo/instafilter/pkg/cli"
	"github.com/Fepozopo/instafilter/pkg/config"
	"github.com/Fepozopo/instafilter/pkg/engine"
	"github.com/Fepozopo/instafilter/pkg/export"
	"github.com/Fepozopo/instafilter/pkg/render"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "instafilter"))
	}
	cfg, err := config.Load(dirs...)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Debug().Str("backend", cfg.Backend).Str("filter", cfg.Filter.String()).Msg("config loaded")

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("instafilter exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	rctx := render.NewContext()
	defer rctx.Close()

	backend, release, err := cli.OpenBackend(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed initializing backend: %w", err)
	}
	defer release()

	exporter, err := export.NewDiskExporter(cfg.Export.Dir, cfg.Export.Format, cfg.Export.Quality)
	if err != nil {
		return fmt.Errorf("invalid export settings: %w", err)
	}

	eng := engine.New(backend, rctx,
		engine.WithVariant(cfg.Filter),
		engine.WithIntensity(cfg.Intensity),
	)

	var preview *cli.Previewer
	if cfg.Preview && cli.PreviewSupported() {
		preview = cli.NewPreviewer(os.Stdout, rctx)
	}

	session := cli.New(app.New(eng, exporter), cfg, preview, os.Stdin, os.Stdout)
	return session.Run(os.Args[1:])
}
