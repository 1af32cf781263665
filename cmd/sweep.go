package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	authPostgres "github.com/frahmantamala/salesops/internal/auth/postgres"
	"github.com/frahmantamala/salesops/pkg/logger"
	"github.com/spf13/cobra"
)

var sweepInterval time.Duration

// sweepCmd prunes expired rows from the session ledger and the token
// blacklist. Expired entries are already ignored by the auth gate; this
// keeps the tables from growing without bound.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Prune expired sessions and blacklist entries",
	Long:  `Delete expired rows from the sessions and token_blacklist tables. Runs once by default; pass --interval to keep sweeping on a timer.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSweep()
	},
}

func init() {
	sweepCmd.Flags().DurationVar(&sweepInterval, "interval", 0, "sweep repeatedly at this interval (0 = run once)")
}

func runSweep() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.L()

	sqlxDB, err := initDB(cfg.Database)
	if err != nil {
		lg.Error("failed to init db", "error", err)
		os.Exit(1)
	}
	defer sqlxDB.Close()

	gormDB, err := initGorm(sqlxDB)
	if err != nil {
		lg.Error("failed to init gorm", "error", err)
		os.Exit(1)
	}

	repo := authPostgres.NewRepository(gormDB)

	sweepOnce := func() {
		removed, err := repo.DeleteExpired(time.Now())
		if err != nil {
			lg.Error("sweep failed", "error", err)
			return
		}
		lg.Info("sweep complete", "rows_removed", removed)
	}

	sweepOnce()
	if sweepInterval <= 0 {
		return
	}

	lg.Info("sweeping on interval", "interval", sweepInterval)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			sweepOnce()
		case sig := <-sigChan:
			lg.Info("received signal, stopping sweeper", "signal", sig)
			return
		}
	}
}
