package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
	"github.com/noah-isme/shift-roster-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, legend []string) ([]byte, error)
}

type monthGridReader interface {
	MonthGrid(ctx context.Context, department string, year, month int) (*RosterGrid, error)
}

// pdfCodes are the ASCII stand-ins printed in PDF rosters.
var pdfCodes = map[string]string{
	models.ShiftTypeDay:                "D",
	models.ShiftTypeNight:              "N",
	models.ShiftTypeDawn:               "A",
	models.ShiftTypeDayOff:             "O",
	models.ShiftTypePaidLeave:          "PL",
	models.ShiftTypeConfirmedTemporary: "TC",
	models.ShiftTypeSelfTemporary:      "TS",
}

var pdfLegend = []string{
	"D day   N night   A after night   O day off   PL paid leave",
	"TC temporary (confirmed)   TS temporary (self-arranged)   * other code",
}

// ExportResult is a rendered roster file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RosterExportService renders a reconciled month as CSV or PDF.
type RosterExportService struct {
	grids  monthGridReader
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewRosterExportService constructs the exporter.
func NewRosterExportService(grids monthGridReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *RosterExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterExportService{grids: grids, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the department month in format.
func (s *RosterExportService) Export(ctx context.Context, department string, year, month int, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Validation(fmt.Sprintf("unsupported export format %q", format))
	}

	grid, err := s.grids.MonthGrid(ctx, department, year, month)
	if err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("roster-%s-%04d-%02d.%s", grid.Department, year, month, format)

	var result *ExportResult
	switch format {
	case FormatPDF:
		title := fmt.Sprintf("Shift roster %s %04d-%02d", asciiOr(grid.Department, "department"), year, month)
		body, err := s.pdf.Render(rosterDataset(grid, pdfCell, pdfWorkerLabel), title, pdfLegend)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render roster pdf")
		}
		result = &ExportResult{Filename: filename, ContentType: "application/pdf", Body: body}
	default:
		body, err := s.csv.Render(rosterDataset(grid, strings.TrimSpace, models.WorkerProfile.DisplayName))
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render roster csv")
		}
		result = &ExportResult{Filename: filename, ContentType: "text/csv; charset=utf-8", Body: body}
	}

	s.logger.Info("roster exported",
		zap.String("department", grid.Department),
		zap.String("format", format),
		zap.Int("workers", len(grid.Workers)),
		zap.Int("bytes", len(result.Body)))
	return result, nil
}

const workerHeader = "worker"

// rosterDataset lays the grid out with one row per worker and a column per
// day of month.
func rosterDataset(grid *RosterGrid, cell func(string) string, label func(models.WorkerProfile) string) export.Dataset {
	headers := make([]string, 0, len(grid.Dates)+1)
	headers = append(headers, workerHeader)
	for _, d := range grid.Dates {
		headers = append(headers, fmt.Sprintf("%02d", d.Day()))
	}

	rows := make([]map[string]string, 0, len(grid.Workers))
	for _, worker := range grid.Workers {
		values := map[string]string{workerHeader: label(worker)}
		for i, d := range grid.Dates {
			if code := grid.Cell(worker.ID, d); code != "" {
				values[headers[i+1]] = cell(code)
			}
		}
		rows = append(rows, values)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func pdfCell(code string) string {
	if mapped, ok := pdfCodes[code]; ok {
		return mapped
	}
	return asciiOr(code, "*")
}

func pdfWorkerLabel(worker models.WorkerProfile) string {
	if name := worker.DisplayName(); isASCII(name) {
		return name
	}
	return asciiOr(worker.Username, "#"+strconv.FormatInt(worker.ID, 10))
}

func asciiOr(value, fallback string) string {
	if value != "" && isASCII(value) {
		return value
	}
	return fallback
}

func isASCII(value string) bool {
	for _, r := range value {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
