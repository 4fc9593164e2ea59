package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/shift-roster-api/internal/service"
	"github.com/noah-isme/shift-roster-api/pkg/storage"
)

var (
	exportFormat string
	exportOut    string
	exportPrune  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the month roster as CSV or PDF",
	Long: `Render the reconciled month and write it under EXPORT_DIR.

With --prune, files in EXPORT_DIR older than EXPORT_MAX_AGE are removed first.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", service.FormatCSV, "csv or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: generated name under EXPORT_DIR)")
	exportCmd.Flags().BoolVar(&exportPrune, "prune", false, "Remove expired exports before writing")
}

func runExport(cmd *cobra.Command, args []string) error {
	year, mon, err := monthFlag()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := storage.NewLocalStorage(s.cfg.Export.Dir)
	if err != nil {
		return err
	}
	if exportPrune {
		removed, err := store.CleanupOlderThan(s.cfg.Export.MaxAge)
		if err != nil {
			return err
		}
		for _, name := range removed {
			fmt.Fprintln(cmd.ErrOrStderr(), "pruned", name)
		}
	}

	result, err := s.app.Export.Export(ctx, s.department(), year, mon, exportFormat)
	if err != nil {
		return err
	}
	name := exportOut
	if name == "" {
		name = result.Filename
	}
	path, err := store.Save(name, result.Body)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
