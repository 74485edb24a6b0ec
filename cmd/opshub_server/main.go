package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evidentia/opshub/internal/config"
	"github.com/evidentia/opshub/internal/database"
	"github.com/evidentia/opshub/internal/hub"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	uid    string

	hub *hub.Hub
	dbm *database.Manager
}

func NewApp(conf *config.AppConfig) *App {
	app := &App{
		logger: slog.Default(),
		config: conf,
		uid:    uuid.NewString(),
	}

	return app
}

func (app *App) Run() {
	if dbName := app.config.DB(); dbName != "" {
		db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			app.logger.Error("db open error, running without radio log", slog.Any("error", err))
		} else {
			app.dbm = database.New(db)

			if err := app.dbm.Migrate(); err != nil {
				app.logger.Error("migration error", slog.Any("error", err))
				os.Exit(1)
			}
		}
	}

	app.hub = hub.New(app.dbm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.hub.Run(ctx)

	go func() {
		addr := app.config.ApiAddr()
		app.logger.Info("listening on " + addr)

		if err := NewHttp(app).Listen(addr); err != nil {
			app.logger.Error("http error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
}

func main() {
	fmt.Printf("version %s\n", getVersion())

	debug := flag.Bool("debug", false, "debug logging")
	conf := flag.String("config", "opshub_server.yml", "name of config file")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv("OPSHUB_"); err != nil {
		panic(err)
	}

	var h slog.Handler
	if *debug {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	NewApp(cfg).Run()
}
