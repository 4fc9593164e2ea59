package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/shift-roster-api/internal/dto"
)

var generateActor string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate draft shifts for a department month",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateActor, "actor", "", "Recorded as UpdatedBy (default: GENERATOR_ACTOR)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	summary, err := s.app.Generator.Generate(ctx, dto.GenerateShiftsRequest{
		Year:       year,
		Month:      mon,
		Department: s.department(),
		Actor:      generateActor,
	})
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func printSummary(w io.Writer, summary *dto.GenerationSummary) {
	fmt.Fprintf(w, "%s %s: %d shifts over %d days (%d temporary, %d requirements)\n",
		summary.Department, summary.Month, summary.ShiftsCreated, summary.Days, summary.TemporaryShifts, summary.Requirements)
	for _, slot := range summary.Underfilled {
		fmt.Fprintf(w, "  underfilled %s %s: %d/%d\n", slot.Date, slot.TimeSlot, slot.Filled, slot.Required)
	}
}
