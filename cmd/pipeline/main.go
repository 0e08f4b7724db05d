// Command pipeline runs the offline steps: CSV ingest and the feature rebuild
// that also exports the training dataset.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"creditpath-backend/internal/adapter/repository/gormrepo"
	"creditpath-backend/internal/config"
	"creditpath-backend/internal/infrastructure/cache"
	"creditpath-backend/internal/infrastructure/db"
	"creditpath-backend/internal/observability"
	"creditpath-backend/internal/usecase/features"
	"creditpath-backend/internal/usecase/ingest"
)

type env struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *gorm.DB
	metrics *observability.Metrics
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "CreditPath data pipeline",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return e.open()
		},
	}
	root.AddCommand(newIngestCmd(e), newFeaturesCmd(e))
	return root
}

func (e *env) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	e.log = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	e.metrics = observability.NewMetrics()

	gdb, err := db.OpenGorm(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: db.LogLevel(cfg.LogLevel)})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	e.db = gdb
	return nil
}

func newIngestCmd(e *env) *cobra.Command {
	var (
		dataDir   string
		chunkSize int
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load borrowers.csv, loans.csv and repayments.csv into storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataDir == "" {
				dataDir = e.cfg.DataDir
			}
			if chunkSize <= 0 {
				chunkSize = e.cfg.IngestChunkSize
			}
			uc := ingest.NewUsecase(gormrepo.NewGormUoW(e.db)).
				WithChunkSize(chunkSize).
				WithObserver(e.metrics).
				WithLogger(e.log)

			if e.cfg.RedisAddr != "" {
				rdb, err := cache.OpenRedis(cmd.Context(), e.cfg.RedisAddr, e.cfg.RedisDB)
				if err != nil {
					e.log.Warn("redis unavailable, dashboard cache left as is", "err", err)
				} else {
					defer rdb.Close()
					uc.WithInvalidator(cache.NewStatsCache(rdb, e.cfg.StatsCacheTTL()))
				}
			}

			reports, err := uc.LoadDir(cmd.Context(), dataDir)
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s read=%d inserted=%d chunks_failed=%d\n",
					r.Table, r.RowsRead, r.RowsInserted, r.ChunksFailed)
				for _, msg := range r.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding the CSV extracts (default DATA_DIR)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "rows per insert transaction (default INGEST_CHUNK_SIZE)")
	return cmd
}

func newFeaturesCmd(e *env) *cobra.Command {
	var (
		exportPath string
		noExport   bool
	)
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Rebuild loan_features and export the training dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if exportPath == "" {
				exportPath = e.cfg.ExportPath
			}
			if noExport {
				exportPath = ""
			}
			uc := features.NewUsecase(gormrepo.NewGormUoW(e.db)).
				WithObserver(e.metrics).
				WithLogger(e.log)

			res, err := uc.Rebuild(cmd.Context(), exportPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d feature rows in %s\n", res.RunID, res.Features, res.Duration)
			if res.ExportPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "training data written to %s\n", res.ExportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportPath, "export", "", "training CSV path (default EXPORT_PATH)")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "skip the training CSV export")
	return cmd
}
