package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/shift-roster-api/internal/dto"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load requirements, temporary assignments and leave from YAML",
	Long: `Read a YAML document and submit each section to its intake service:

  department: amami
  requirements:
    - {date: 2025-08-01, timeSlot: "9-18", requiredCount: 2}
  temporaryAssignments:
    - {workerId: 12, date: 2025-08-01, timeSlot: "9-18"}
  leaveRequests:
    - {workerId: 3, date: 2025-08-02, kind: DAY_OFF}

Entries without a department inherit the document's department, then
--department, then DEFAULT_DEPARTMENT. Sections are applied in the order
shown and each section is one transaction.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "YAML document to import (- for stdin)")
	_ = importCmd.MarkFlagRequired("file")
}

type importDocument struct {
	Department           string                         `yaml:"department"`
	Requirements         []dto.StaffingRequirementInput `yaml:"requirements"`
	TemporaryAssignments []dto.TemporaryAssignmentInput `yaml:"temporaryAssignments"`
	LeaveRequests        []dto.LeaveRequestInput        `yaml:"leaveRequests"`
}

func parseImportDocument(r io.Reader, fallbackDepartment string) (*importDocument, error) {
	var doc importDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode import document: %w", err)
	}

	dept := doc.Department
	if dept == "" {
		dept = fallbackDepartment
	}
	for i := range doc.Requirements {
		if doc.Requirements[i].Department == "" {
			doc.Requirements[i].Department = dept
		}
	}
	for i := range doc.TemporaryAssignments {
		if doc.TemporaryAssignments[i].Department == "" {
			doc.TemporaryAssignments[i].Department = dept
		}
	}
	for i := range doc.LeaveRequests {
		if doc.LeaveRequests[i].Department == "" {
			doc.LeaveRequests[i].Department = dept
		}
	}
	return &doc, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if importFile != "-" {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		in = f
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := parseImportDocument(in, s.department())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(doc.Requirements) > 0 {
		counts, err := s.app.Requirements.Upsert(ctx, dto.UpsertStaffingRequirements{Requirements: doc.Requirements})
		if err != nil {
			return fmt.Errorf("requirements: %w", err)
		}
		fmt.Fprintf(out, "requirements: %d/%d written\n", counts.Written, counts.Received)
	}
	if len(doc.TemporaryAssignments) > 0 {
		counts, err := s.app.Temporary.Assign(ctx, dto.AssignTemporaryWorkers{Assignments: doc.TemporaryAssignments})
		if err != nil {
			return fmt.Errorf("temporary assignments: %w", err)
		}
		fmt.Fprintf(out, "temporary assignments: %d/%d written\n", counts.Written, counts.Received)
	}
	if len(doc.LeaveRequests) > 0 {
		counts, err := s.app.Leave.Submit(ctx, dto.SubmitLeaveRequests{Requests: doc.LeaveRequests})
		if err != nil {
			return fmt.Errorf("leave requests: %w", err)
		}
		fmt.Fprintf(out, "leave requests: %d/%d written\n", counts.Written, counts.Received)
	}
	return nil
}
