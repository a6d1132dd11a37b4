package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/railrakshak/backend/internal/server"
	"github.com/railrakshak/backend/internal/version"
)

const envPrefix = "RAILRAKSHAK"

var rootCmd = &cobra.Command{
	Use:     "railrakshak",
	Short:   "RailRakshak Backend development server",
	Version: version.Detailed(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		s, err := server.New(cfg)
		if err != nil {
			return err
		}

		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().IntP("port", "p", server.DefaultPort, "Port to listen on")
}

func main() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the port from the --port flag, then RAILRAKSHAK_PORT,
// then the default.
func loadConfig(cmd *cobra.Command) (*server.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("port", server.DefaultPort)
	if err := v.BindPFlag("port", cmd.Flags().Lookup("port")); err != nil {
		return nil, fmt.Errorf("bind port flag: %w", err)
	}

	cfg := server.DefaultConfig()
	port, err := cast.ToIntE(v.Get("port"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid port %q: %w", v.GetString("port"), err)
	}
	cfg.HTTP.Port = port
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	slog.Debug("config loaded", "addr", cfg.HTTP.Addr())
	return cfg, nil
}
