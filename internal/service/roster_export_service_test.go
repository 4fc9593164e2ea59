package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
	"github.com/noah-isme/shift-roster-api/pkg/export"
)

type gridStub struct {
	grid *RosterGrid
	err  error
}

func (s *gridStub) MonthGrid(context.Context, string, int, int) (*RosterGrid, error) {
	return s.grid, s.err
}

type pdfCapture struct {
	data   export.Dataset
	title  string
	legend []string
}

func (p *pdfCapture) Render(data export.Dataset, title string, legend []string) ([]byte, error) {
	p.data, p.title, p.legend = data, title, legend
	return []byte("%PDF-fake"), nil
}

func sampleGrid() *RosterGrid {
	kanji := models.WorkerProfile{ID: 2, Username: "jsato", FirstName: "次郎", LastName: "佐藤"}
	return &RosterGrid{
		Department: "amami",
		Year:       2025,
		Month:      8,
		Workers:    []models.WorkerProfile{{ID: 1, Username: "htanaka", FirstName: "Hanako", LastName: "Tanaka"}, kanji},
		Dates:      []time.Time{day(1), day(2)},
		Cells: map[string]string{
			"1_2025-08-01": "日",
			"1_2025-08-02": "臨(確)",
			"2_2025-08-02": "研修",
		},
	}
}

func TestRosterExportCSV(t *testing.T) {
	svc := NewRosterExportService(&gridStub{grid: sampleGrid()}, export.NewCSVExporter(false), &pdfCapture{}, nil)

	res, err := svc.Export(context.Background(), "amami", 2025, 8, "")
	require.NoError(t, err)
	assert.Equal(t, "roster-amami-2025-08.csv", res.Filename)
	assert.True(t, strings.HasPrefix(res.ContentType, "text/csv"))

	lines := strings.Split(strings.TrimSpace(string(res.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "worker,01,02", lines[0])
	assert.Equal(t, "Tanaka Hanako,日,臨(確)", lines[1])
	assert.Equal(t, "佐藤 次郎,,研修", lines[2])
}

func TestRosterExportPDFUsesASCIICodes(t *testing.T) {
	capture := &pdfCapture{}
	svc := NewRosterExportService(&gridStub{grid: sampleGrid()}, export.NewCSVExporter(false), capture, nil)

	res, err := svc.Export(context.Background(), "amami", 2025, 8, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, "Shift roster amami 2025-08", capture.title)
	assert.Equal(t, pdfLegend, capture.legend)

	require.Len(t, capture.data.Rows, 2)
	assert.Equal(t, "D", capture.data.Rows[0]["01"])
	assert.Equal(t, "TC", capture.data.Rows[0]["02"])
	assert.Equal(t, "jsato", capture.data.Rows[1][workerHeader])
	assert.Equal(t, "*", capture.data.Rows[1]["02"])
}

func TestRosterExportErrors(t *testing.T) {
	svc := NewRosterExportService(&gridStub{grid: sampleGrid()}, export.NewCSVExporter(false), &pdfCapture{}, nil)
	_, err := svc.Export(context.Background(), "amami", 2025, 8, "xlsx")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	failing := NewRosterExportService(&gridStub{err: appErrors.Internal(errors.New("down"), "failed to load workers")}, export.NewCSVExporter(false), &pdfCapture{}, nil)
	_, err = failing.Export(context.Background(), "amami", 2025, 8, "csv")
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
