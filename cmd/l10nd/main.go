package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard/gorouter"
	l10n "github.com/goliatone/go-l10n-dashboard/pkg/dashboard"
	"github.com/goliatone/go-l10n-dashboard/pkg/config"
)

type cli struct {
	Addr     string `help:"Listen address; overrides LISTEN_ADDR."`
	BasePath string `name:"base-path" help:"Mount point of the dashboard; overrides BASE_PATH."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Localization dashboard server."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (c *cli) Run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.ListenAddr = c.Addr
	}
	if c.BasePath != "" {
		cfg.BasePath = c.BasePath
	}

	app, err := l10n.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("l10nd: %w", err)
	}
	defer app.Close()

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.Controller,
		API:        app.Executor,
		Broadcast:  app.Broadcast,
		BasePath:   cfg.BasePath,
	}); err != nil {
		return fmt.Errorf("l10nd: register routes: %w", err)
	}

	app.Logger.Info("dashboard ready",
		slog.String("addr", cfg.ListenAddr),
		slog.String("pages", cfg.BasePath+"/dashboard"),
		slog.String("api", cfg.BasePath+"/api"),
		slog.String("selection_store", cfg.SelectionStore),
	)
	return server.Serve(cfg.ListenAddr)
}
