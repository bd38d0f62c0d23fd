package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"voter-registry/core/cache"
	"voter-registry/core/config"
	"voter-registry/core/database"
	"voter-registry/core/logger"
	"voter-registry/feature/registry"
	"voter-registry/feature/registry/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ingestBatchName string

// ingestCmd ingests a local roll file without going through the HTTP API.
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a local roll file into a batch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := models.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		snapshots, err := cache.New(cfg.Cache)
		if err != nil {
			logg.Warn("Optional snapshot cache unavailable", zap.Error(err))
		}

		path := args[0]
		payload, err := os.ReadFile(path)
		if err != nil {
			logg.Fatal("Failed to read roll file", zap.String("path", path), zap.Error(err))
		}

		fileName := filepath.Base(path)
		batchName := ingestBatchName
		if batchName == "" {
			batchName = fileName
		}

		svc := registry.NewService(db, snapshots, nil, "", logg,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second)

		count, warnings, err := svc.IngestRoll(context.Background(), batchName, fileName, payload, time.Now())
		if err != nil {
			logg.Fatal("Ingestion failed", zap.Error(err))
		}

		logg.Info("Roll ingested",
			zap.String("batch", batchName),
			zap.Int("created", count),
			zap.Int("warnings", len(warnings)))
		for _, w := range warnings {
			logg.Warn("Block skipped", zap.Int("block", w.Block), zap.String("reason", w.Reason))
		}
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestBatchName, "batch", "b", "", "batch name (defaults to the file name)")
	RootCmd.AddCommand(ingestCmd)
}
