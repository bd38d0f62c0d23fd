package cmd

import (
	"log"
	"os"
	"time"

	"voter-registry/core/logger"
	"voter-registry/feature/registry/roll"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseCmd dry-runs the roll parser over a local file, useful for checking
// a dump before ingesting it.
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a roll file without persisting anything",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		payload, err := os.ReadFile(args[0])
		if err != nil {
			logg.Fatal("Failed to read roll file", zap.String("path", args[0]), zap.Error(err))
		}

		records, warnings, err := roll.NewParser(nil).ParseBytes(payload, time.Now())
		if err != nil {
			logg.Fatal("Parse failed", zap.Error(err))
		}

		logg.Info("Parse complete",
			zap.Int("records", len(records)),
			zap.Int("warnings", len(warnings)))

		for _, w := range warnings {
			logg.Warn("Block skipped", zap.Int("block", w.Block), zap.String("reason", w.Reason))
		}
		for _, r := range records {
			fields := []zap.Field{
				zap.String("serial", r.SerialNo),
				zap.String("name", r.Name),
				zap.String("voter_no", r.VoterNo),
			}
			if r.Age != nil {
				fields = append(fields, zap.Int("age", *r.Age))
			}
			logg.Debug("Parsed record", fields...)
		}
	},
}

func init() {
	RootCmd.AddCommand(parseCmd)
}
