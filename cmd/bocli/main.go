// bocli is a small operational client for the backoffice API: log in, inspect
// the current identity, and read merchant reference data from a terminal.
//
// Configuration comes from the environment (a .env file is honored):
//
//	BO_BASE_URL     backend origin (required)
//	BO_REDIS_ADDR   redis address for the credential store (default 127.0.0.1:6379)
//	BO_USERNAME     login username (login command)
//	BO_PASSWORD     login password (login command)
//	BO_TIMEOUT      request timeout (default 30s)
//	BO_DEBUG        verbose logging
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	boclient "github.com/kittipatv/boclient"
)

type cliConfig struct {
	BaseURL   string        `env:"BO_BASE_URL,required"`
	RedisAddr string        `env:"BO_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Username  string        `env:"BO_USERNAME"`
	Password  string        `env:"BO_PASSWORD"`
	Timeout   time.Duration `env:"BO_TIMEOUT" envDefault:"30s"`
	Debug     bool          `env:"BO_DEBUG"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bocli:", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	if len(os.Args) < 2 {
		return fmt.Errorf("usage: bocli <login|me|balance|banks>")
	}
	command := os.Args[1]

	logger := zap.NewNop()
	if cfg.Debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	appCfg := boclient.DefaultConfig()
	appCfg.Gateway.BaseURL = cfg.BaseURL
	appCfg.Gateway.Timeout = cfg.Timeout
	appCfg.Gateway.UserAgent = "bocli"

	app, err := boclient.New().
		WithConfig(appCfg).
		WithRedis(rdb).
		WithNotifier(boclient.NewWriterNotifier(os.Stderr)).
		WithLogger(logger).
		WithNavigator(boclient.NavigatorFunc(func(path string) {
			logger.Debug("navigate", zap.String("path", path))
		})).
		Build()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	switch command {
	case "login":
		if cfg.Username == "" || cfg.Password == "" {
			return fmt.Errorf("login requires BO_USERNAME and BO_PASSWORD")
		}
		app.Sessions.Login(ctx, boclient.Credentials{
			Username: cfg.Username,
			Password: cfg.Password,
		})
		if !app.Sessions.Authenticated() {
			return fmt.Errorf("login failed")
		}
		return printJSON(app.Sessions.User())
	case "me":
		app.Sessions.Restore(ctx)
		app.Sessions.Me(ctx)
		if !app.Sessions.Authenticated() {
			return fmt.Errorf("not authenticated")
		}
		return printJSON(app.Sessions.User())
	case "balance":
		app.Sessions.Restore(ctx)
		balance, err := app.Balance(ctx)
		if err != nil {
			return err
		}
		return printJSON(balance)
	case "banks":
		app.Sessions.Restore(ctx)
		banks, err := app.Banks(ctx)
		if err != nil {
			return err
		}
		return printJSON(banks)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
