package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/shift-roster-api/internal/service"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print the reconciled month grid",
	RunE:  runRoster,
}

func runRoster(cmd *cobra.Command, args []string) error {
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

	grid, err := s.app.View.MonthGrid(ctx, s.department(), year, mon)
	if err != nil {
		return err
	}
	return renderGrid(cmd.OutOrStdout(), grid)
}

// renderGrid writes one row per worker and one column per day of month.
// Empty cells print as ".".
func renderGrid(w io.Writer, grid *service.RosterGrid) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	header := []string{"worker"}
	for _, date := range grid.Dates {
		header = append(header, fmt.Sprintf("%02d", date.Day()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, worker := range grid.Workers {
		row := []string{worker.DisplayName()}
		for _, date := range grid.Dates {
			code := grid.Cell(worker.ID, date)
			if code == "" {
				code = "."
			}
			row = append(row, code)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
