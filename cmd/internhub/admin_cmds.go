package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/storage/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var (
	backfillAll bool
	exportOut   string
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Score stored applications that have no breakdown",
	Long:  "Recompute scores from stored ratings, profile and GitHub data. No résumé parsing or network calls are made.",
	RunE:  runBackfill,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every application to a JSON file",
	RunE:  runExport,
}

func init() {
	backfillCmd.Flags().BoolVar(&backfillAll, "all", false, "rescore every application, not only unscored ones")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default internhub_candidates_YYYYMMDD.json)")

	rootCmd.AddCommand(migrateCmd, backfillCmd, exportCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap(cmd.Context(), bootOptions{migrate: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	v, err := migrations.Version(cmd.Context(), rt.db, rt.driver)
	if err != nil {
		return err
	}
	rt.log.Info().Int64("version", v).Str("driver", rt.driver).Msg("schema up to date")
	return nil
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap(cmd.Context(), bootOptions{migrate: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	rep, err := rt.svc.Backfill(cmd.Context(), backfillAll)
	if err != nil {
		return err
	}
	rt.log.Info().Int("scanned", rep.Scanned).Int("rescored", rep.Rescored).Int("failed", rep.Failed).Msg("backfill finished")
	if rep.Failed > 0 {
		return fmt.Errorf("backfill: %d of %d applications failed", rep.Failed, rep.Scanned)
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap(cmd.Context(), bootOptions{migrate: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	records, err := rt.svc.Export(cmd.Context())
	if err != nil {
		return err
	}
	path := exportOut
	if path == "" {
		path = application.ExportFilename(time.Now())
	}
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	rt.log.Info().Int("applications", len(records)).Str("path", path).Msg("export written")
	return nil
}
