// Package dashboard assembles the localization dashboard from configuration:
// the REST backend, the persisted project selection, the service, and the
// controller and API executor the transports mount.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"os"

	core "github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-l10n-dashboard/pkg/activity"
	"github.com/goliatone/go-l10n-dashboard/pkg/apiclient"
	"github.com/goliatone/go-l10n-dashboard/pkg/config"
	"github.com/goliatone/go-l10n-dashboard/pkg/selectionstore"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// App bundles the components shared by the server, the CLI and the demo.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Service    *core.Service
	Controller *core.Controller
	Executor   *httpapi.Executor
	Broadcast  *core.BroadcastHook

	closers []func() error
}

type appOptions struct {
	backend   core.Backend
	renderer  core.Renderer
	logger    *slog.Logger
	store     core.KVStore
	hooks     activity.Hooks
	telemetry *LogTelemetry
}

// AppOption customises New.
type AppOption func(*appOptions)

// WithBackend replaces the REST client, e.g. with apiclient.MockClient.
func WithBackend(backend core.Backend) AppOption {
	return func(o *appOptions) { o.backend = backend }
}

// WithRenderer replaces the embedded go-template renderer.
func WithRenderer(renderer core.Renderer) AppOption {
	return func(o *appOptions) { o.renderer = renderer }
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) { o.logger = logger }
}

// WithSelectionStore replaces the store named by the configuration.
func WithSelectionStore(store core.KVStore) AppOption {
	return func(o *appOptions) { o.store = store }
}

// WithActivityHooks forwards mutation activity to hooks in addition to the
// log.
func WithActivityHooks(hooks ...activity.Hook) AppOption {
	return func(o *appOptions) { o.hooks = append(o.hooks, hooks...) }
}

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// New wires every component described by cfg.
func New(ctx context.Context, cfg config.Config, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg)
	}
	app := &App{Config: cfg, Logger: o.logger}

	backend := o.backend
	if backend == nil {
		client, err := apiclient.NewClient(apiclient.Config{
			BaseURL: cfg.APIURL,
			Token:   cfg.APIToken,
			Timeout: cfg.APITimeout,
		})
		if err != nil {
			return nil, err
		}
		backend = client
	}

	store := o.store
	if store == nil {
		opened, closeFn, err := selectionstore.Open(ctx, selectionstore.Settings{
			Kind:     cfg.SelectionStore,
			FilePath: cfg.SelectionFile,
			RedisURL: cfg.RedisURL,
		})
		if err != nil {
			return nil, err
		}
		store = opened
		app.closers = append(app.closers, closeFn)
	}
	selection, err := core.LoadProjectSelection(ctx, store)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	renderer := o.renderer
	if renderer == nil {
		if renderer, err = core.NewTemplateRenderer(cfg.TemplatesDir); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	telemetry := &LogTelemetry{Logger: o.logger}
	hooks := append(activity.Hooks{LogHook(o.logger)}, o.hooks...)
	app.Broadcast = core.NewBroadcastHook()
	app.Service = core.NewService(core.Options{
		Backend:        backend,
		CacheTTL:       cfg.CacheTTL,
		Selection:      selection,
		RefreshHook:    app.Broadcast,
		Telemetry:      telemetry,
		ActivityHooks:  hooks,
		ActivityConfig: activity.Config{Enabled: true, Channel: "l10n"},
		Logger:         o.logger,
	})
	app.Controller = core.NewController(core.ControllerOptions{
		Service:  app.Service,
		Renderer: renderer,
		Charts:   core.NewStatisticsCharts(core.ChartOptions{AssetsHost: cfg.EChartsAssetsHost}),
		Locale:   cfg.NumberLocale,
		BasePath: cfg.BasePath,
	})
	app.Executor = httpapi.NewExecutor(app.Service, telemetry)
	return app, nil
}

// Close releases the selection store.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// LogTelemetry records telemetry events as debug logs. It satisfies both the
// service and the command telemetry contracts.
type LogTelemetry struct {
	Logger *slog.Logger
}

func (t *LogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	if t == nil || t.Logger == nil {
		return
	}
	attrs := make([]any, 0, len(payload)+1)
	attrs = append(attrs, slog.String("event", event))
	for k, v := range payload {
		attrs = append(attrs, slog.Any(k, v))
	}
	t.Logger.DebugContext(ctx, "telemetry", attrs...)
}

// LogHook writes every activity event to logger.
func LogHook(logger *slog.Logger) activity.Hook {
	return activity.HookFunc(func(ctx context.Context, event activity.Event) error {
		logger.InfoContext(ctx, "activity",
			slog.String("verb", event.Verb),
			slog.String("object_type", event.ObjectType),
			slog.String("object_id", event.ObjectID),
			slog.String("user_id", event.UserID),
		)
		return nil
	})
}
