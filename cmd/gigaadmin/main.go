// Command gigaadmin is the super-admin console of the learning platform. It
// logs in, lists and exports records, submits authoring drafts from YAML
// files, and runs the account actions of the admin screens.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/platform/cache"
	"github.com/gigaversity/gigaadmin/internal/platform/config"
	"github.com/gigaversity/gigaadmin/internal/platform/logging"
	"github.com/gigaversity/gigaadmin/internal/session"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		return 1
	}

	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log config:", err)
		return 1
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "store", cfg.Session.Store, "error", err)
		return 1
	}
	defer closeStore()

	sess := session.NewManager(store)
	client := api.New(cfg.API.BaseURL,
		api.WithTokenSource(sess),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
		api.WithLogger(logger),
	)

	cli := newCommandLine(client, sess, os.Stdout)
	if err := cli.run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, errHelp):
			return 2
		case errors.Is(err, session.ErrNotLoggedIn):
			fmt.Fprintln(os.Stderr, "not logged in: run 'gigaadmin login -email EMAIL' first")
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

// openStore picks the session backend named in cfg.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("using redis session store", "key", cfg.Session.Key)
		return session.NewRedisStore(c, cfg.Session.Key), func() { c.Close() }, nil
	default:
		slog.Debug("using file session store", "path", cfg.Session.Path)
		return session.NewFileStore(cfg.Session.Path), func() {}, nil
	}
}
