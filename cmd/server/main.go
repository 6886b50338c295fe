package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmorrisey/pairs/pkg/api"
	"github.com/tmorrisey/pairs/pkg/game"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/notify"
	"github.com/tmorrisey/pairs/pkg/repositories"
	"github.com/tmorrisey/pairs/pkg/sessions"
	"github.com/tmorrisey/pairs/pkg/version"
	"github.com/tmorrisey/pairs/pkg/workers"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	dbDriver := flag.String("db-driver", "sqlite", "Results database driver (sqlite or postgres)")
	sqlitePath := flag.String("sqlite-path", "pairs.db", "Path to the sqlite results database")
	certFile := flag.String("cert-file", "", "TLS certificate file")
	keyFile := flag.String("key-file", "", "TLS key file")
	hideDelay := flag.Duration("hide-delay", game.DefaultConfig().HideDelay, "How long mismatched tiles stay visible")
	gameOverDelay := flag.Duration("gameover-delay", game.DefaultConfig().GameOverDelay, "Pause before announcing a win")
	defaultBoardSize := flag.Int("board-size", game.DefaultConfig().DefaultBoardSize, "Default board size for new games")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *defaultBoardSize%2 != 0 || *defaultBoardSize < cfg.MinBoardSize || *defaultBoardSize > cfg.MaxBoardSize {
		panic(fmt.Sprintf("Board size must be even and between %d and %d", cfg.MinBoardSize, cfg.MaxBoardSize))
	}

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repository repositories.Repository
	switch *dbDriver {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, *sqlitePath)
	case "postgres":
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			panic("DATABASE_URL environment variable must be set for the postgres driver")
		}
		repository, err = repositories.NewPostgresRepository(ctx, connStr)
	default:
		panic(fmt.Sprintf("Unknown db driver: %s", *dbDriver))
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	saveResultChan := make(chan workers.SaveResultRequest, 100)
	saveResultWorker := workers.NewSaveResultWorker(workers.NewSaveResultWorkerOptions{
		Repository:     repository,
		SaveResultChan: saveResultChan,
	})
	go saveResultWorker.Start(ctx)

	engineConfig := cfg
	engineConfig.HideDelay = *hideDelay
	engineConfig.GameOverDelay = *gameOverDelay
	engineConfig.DefaultBoardSize = *defaultBoardSize

	sessionManager := sessions.NewManager(sessions.NewManagerOptions{
		EngineConfig:   &engineConfig,
		Notifier:       notify.NewLogNotifier(),
		SaveResultChan: saveResultChan,
	})
	defer sessionManager.Shutdown()

	var tlsConfig *api.TLSConfig
	if *certFile != "" && *keyFile != "" {
		tlsConfig = &api.TLSConfig{
			CertFile: *certFile,
			KeyFile:  *keyFile,
		}
	}

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:           *port,
		TLS:            tlsConfig,
		SessionManager: sessionManager,
		Repository:     repository,
	})

	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
