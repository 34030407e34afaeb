package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/tinyrange/glpong/internal/app"
	"github.com/tinyrange/glpong/internal/config"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file (env "+config.EnvConfig+")")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error (env "+config.EnvLogLevel+")")
	screenshot := fs.String("screenshot", "", "write a PNG of the first frames to this path and exit")
	printConfig := fs.Bool("print-config", false, "print the effective config as TOML and exit")

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load env: %v", err)
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if *configPath == "" {
		*configPath = os.Getenv(config.EnvConfig)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.FromEnv(os.Getenv); err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if *printConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatalf("print config: %v", err)
		}
		return
	}

	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	game, err := app.New(cfg, app.Options{Screenshot: *screenshot}, logger)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	if err := game.Run(); err != nil {
		log.Fatalf("run loop: %v", err)
	}
	slog.Info("game over", "score", game.Game().Score())
}
