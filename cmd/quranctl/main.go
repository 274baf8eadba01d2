// Command quranctl runs maintenance jobs against the quran database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/quran-api/internal/database"
	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/pkg/config"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

// openDB connects and applies the schema.
func (a *app) openDB(ctx context.Context) (database.Service, error) {
	db, err := database.New(ctx, a.cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "quranctl",
		Short:         "Maintenance jobs for the quran api database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.LoadConfig()
			if logLevel != "" {
				a.cfg.LogLevel = logLevel
			}
			log, err := logger.New(a.cfg.AppEnv, a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newSeedCmd(a),
		newSeedParasCmd(a),
		newImportTranslationsCmd(a),
		newExportCmd(a),
		newFixRelationsCmd(a),
		newCheckCmd(a),
		newCreateAdminCmd(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
