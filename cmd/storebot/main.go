package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/uzretail/storebot/config"
	"github.com/uzretail/storebot/internal/activity"
	"github.com/uzretail/storebot/internal/adminapi"
	"github.com/uzretail/storebot/internal/app"
	"github.com/uzretail/storebot/internal/bot"
	"github.com/uzretail/storebot/internal/geo"
	"github.com/uzretail/storebot/internal/ledger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	h        bool
	initdb   bool
	conffile string
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&initdb, "initdb", false, "drop and recreate the database schema")
	flag.StringVar(&conffile, "c", "/etc/storebot.yml", "config file")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(conffile)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	bus := EventBus.New()
	application := app.NewApplication(cfg, bus)
	application.Init()
	defer application.Release()

	if initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	registry, err := geo.NewRegistry(cfg.Stores)
	if err != nil {
		zap.L().Fatal("store registry", zap.Error(err))
	}
	inventory := ledger.NewService(ledger.NewGormRepository(application.DB()), bus)
	people := activity.NewService(application.DB())

	tgbot, err := bot.New(cfg, registry, inventory, people, bus)
	if err != nil {
		zap.L().Fatal("telegram bot init", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgbot.Run(ctx)
	})
	if cfg.AdminAPI.Enabled {
		api := adminapi.NewServer(cfg, application.DB(), inventory, people)
		g.Go(func() error {
			return api.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
