// Command shiftctl runs roster operations against the database without the
// HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/bootstrap"
	"github.com/noah-isme/shift-roster-api/internal/models"
	"github.com/noah-isme/shift-roster-api/pkg/config"
	"github.com/noah-isme/shift-roster-api/pkg/logger"
)

var (
	department string
	month      string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "shiftctl",
	Short:         "Generate, inspect and export department shift rosters",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&department, "department", "d", "", "Department (default: DEFAULT_DEPARTMENT)")
	rootCmd.PersistentFlags().StringVarP(&month, "month", "m", "", "Month as yyyy-MM")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session is what every subcommand needs: config, a logger and the wired app.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	app    *bootstrap.App
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app, err := bootstrap.New(ctx, cfg, logr)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logr, app: app}, nil
}

func (s *session) Close() {
	_ = s.app.Close()
	_ = s.logger.Sync()
}

func (s *session) department() string {
	if d := strings.TrimSpace(department); d != "" {
		return d
	}
	return s.cfg.ShiftMap.DefaultDepartment
}

func monthFlag() (int, int, error) {
	if strings.TrimSpace(month) == "" {
		return 0, 0, fmt.Errorf("--month is required")
	}
	return models.ParseMonth(month)
}
