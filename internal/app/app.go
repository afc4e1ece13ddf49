// Package app assembles the payout screenshot bot from its parts: config,
// session store, conversation machine, renderer, and the Telegram runtime.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	"payshot/core/bootstrap"
	coreconfig "payshot/core/config"
	"payshot/core/logger"
	tg "payshot/core/telegram"
	"payshot/core/telegram/middleware"
	"payshot/core/telegram/router"
	"payshot/internal/flow"
	"payshot/internal/health"
	"payshot/internal/render"
	"payshot/internal/session"
)

// Config carries the loaded core configuration for the runner.
type Config struct {
	core *coreconfig.Config
}

// CoreConfig returns the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return c.core
}

// LoadConfig reads configuration from a YAML file plus environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Config{core: cfg}, nil
}

// LoadEnvConfig builds configuration from environment variables only.
func LoadEnvConfig() (*Config, error) {
	cfg, err := coreconfig.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return &Config{core: cfg}, nil
}

// App holds the assembled bot components.
type App struct {
	cfg      *coreconfig.Config
	allowed  map[int64]struct{}
	handlers *flow.Handlers
	health   *health.Server
}

// Bootstrap initializes infrastructure and wires the bot components.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil || cfg.core == nil {
		return nil, errors.New("app: nil config")
	}
	if _, err := bootstrap.Run(bootstrap.Options{Config: cfg.core}); err != nil {
		return nil, err
	}

	allowed := coreconfig.ParseAllowList(cfg.core.Access.AllowedIDs)
	if len(allowed) == 0 {
		logger.Warn(context.Background(), "app", "access.open",
			slog.String("reason", "allow list empty, every user admitted"),
		)
	} else {
		logger.Info(context.Background(), "app", "access.restricted",
			slog.Int("allowed_users", len(allowed)),
		)
	}

	renderer := render.NewChrome(render.Options{
		ScratchDir:     cfg.core.Render.ScratchDir,
		BrowserPath:    cfg.core.Render.BrowserPath,
		NavTimeout:     time.Duration(cfg.core.Render.NavTimeoutSeconds) * time.Second,
		Settle:         time.Duration(cfg.core.Render.SettleMS) * time.Millisecond,
		ViewportWidth:  cfg.core.Render.ViewportWidth,
		ViewportHeight: cfg.core.Render.ViewportHeight,
	})

	store := session.NewMemoryStore()
	machine := flow.NewMachine(store)
	handlers := flow.NewHandlers(machine, renderer)

	var hs *health.Server
	if cfg.core.Health.Port > 0 {
		hs = health.New(cfg.core.Health.Listen, strconv.Itoa(cfg.core.Health.Port))
	}

	return &App{
		cfg:      cfg.core,
		allowed:  allowed,
		handlers: handlers,
		health:   hs,
	}, nil
}

// TelegramRunOptions composes the runtime options for the Telegram loop.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.handlers.Register(reg)

	mws := tg.DefaultMiddlewares(a.cfg, nil)
	mws = append(mws, tg.Middleware{
		Name: "access",
		Use: middleware.AllowlistMiddleware(middleware.AccessOptions{
			Allowed: a.allowed,
			OnReject: func(c tele.Context) error {
				return c.Send("⛔ You are not allowed to use this bot.")
			},
		}),
	})

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.handlers, reg, router.TextOptions{})...)

	opts := tg.RunOptions{
		Config:   a.cfg,
		Registry: reg,
		Routes:   routes,

		Middlewares: mws,

		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			if a.health != nil {
				a.health.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if a.health != nil {
				return a.health.Stop(ctx)
			}
			return nil
		},
	}
	return opts, nil
}
