package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// csvHeader is the legacy flat-export header row.
var csvHeader = []string{"Member Number", "Member Name", "Due Date", "Loan Amount"}

// CSVRenderer writes the legacy delimited export for simpler deployments.
type CSVRenderer struct {
	outputDir string
}

var _ ports.Renderer = (*CSVRenderer)(nil)

// NewCSVRenderer stages artifacts under outputDir.
func NewCSVRenderer(outputDir string) *CSVRenderer {
	return &CSVRenderer{outputDir: outputDir}
}

// Name identifies the format inside the registry.
func (r *CSVRenderer) Name() string {
	return "csv"
}

// Render writes one row per loan under a date-stamped filename. The
// amount column carries the outstanding balance, formatted for display.
func (r *CSVRenderer) Render(table domain.ReportTable, _ domain.SummaryStats, meta ports.ReportMeta) (*domain.Artifact, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	filename := fmt.Sprintf("Loans_Due_Next_%d_Days_%s.csv",
		meta.LookaheadDays, meta.ReferenceDate.Format("2006-01-02"))
	path := filepath.Join(r.outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range table {
		row := []string{
			rec.LoanID,
			rec.CustomerName,
			rec.DueDate.Format("2006-01-02"),
			domain.FormatMoney(rec.OutstandingBalance),
		}
		if err := writer.Write(row); err != nil {
			file.Close()
			return nil, fmt.Errorf("write csv row for loan %s: %w", rec.LoanID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close csv file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat csv file: %w", err)
	}

	return &domain.Artifact{Path: path, Filename: filename, Bytes: info.Size()}, nil
}
