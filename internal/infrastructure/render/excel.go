package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

const (
	detailSheet  = "Loans Due This Week"
	summarySheet = "Summary"
)

// Colour palette shared with the email body.
const (
	clrHeaderBG  = "1F3864" // dark navy
	clrHeaderFG  = "FFFFFF"
	clrOverdueBG = "FFE0E0" // light red
	clrAltRow    = "F5F8FF" // very light blue
	clrWhite     = "FFFFFF"
	clrTitleBG   = "2E75B6" // medium blue
	clrSummaryBG = "EBF3FB" // pale blue
	clrBorder    = "CCCCCC"
	clrOverdueFG = "CC0000"
	clrActiveFG  = "1B7A1B"
	clrWarnFG    = "E65100"
)

var moneyFormat = "#,##0.00"

var detailColWidths = []float64{22, 15, 18, 20, 13, 15, 18, 28, 28, 14}

// ExcelRenderer writes the two-sheet spreadsheet artifact.
type ExcelRenderer struct {
	outputDir string
}

var _ ports.Renderer = (*ExcelRenderer)(nil)

// NewExcelRenderer stages artifacts under outputDir.
func NewExcelRenderer(outputDir string) *ExcelRenderer {
	return &ExcelRenderer{outputDir: outputDir}
}

// Name identifies the format inside the registry.
func (r *ExcelRenderer) Name() string {
	return "excel"
}

// Render builds the styled detail and summary sheets and saves the
// workbook under a date-stamped filename.
func (r *ExcelRenderer) Render(table domain.ReportTable, stats domain.SummaryStats, meta ports.ReportMeta) (*domain.Artifact, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	filename := fmt.Sprintf("Loans_Due_Report_%s.xlsx", meta.ReferenceDate.Format("20060102"))
	path := filepath.Join(r.outputDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeDetailSheet(f, table, meta); err != nil {
		return nil, err
	}
	if err := r.writeSummarySheet(f, stats, meta); err != nil {
		return nil, err
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat workbook: %w", err)
	}

	return &domain.Artifact{Path: path, Filename: filename, Bytes: info.Size()}, nil
}

// cellStyles holds the style IDs for one row background colour.
type cellStyles struct {
	text          int
	money         int
	center        int
	daysOverdue   int
	daysWarn      int
	daysNormal    int
	statusOverdue int
	statusOK      int
}

func (r *ExcelRenderer) writeDetailSheet(f *excelize.File, table domain.ReportTable, meta ports.ReportMeta) error {
	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return fmt.Errorf("rename detail sheet: %w", err)
	}

	off := false
	if err := f.SetSheetView(detailSheet, -1, &excelize.ViewOptions{ShowGridLines: &off}); err != nil {
		return fmt.Errorf("hide gridlines: %w", err)
	}

	colCount := len(domain.Columns)
	lastCol, _ := excelize.ColumnNumberToName(colCount)

	// Title and generated-on bands.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrHeaderFG, Size: 14, Family: "Arial"},
		Fill:      solidFill(clrTitleBG),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	subStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: clrHeaderFG, Size: 9, Family: "Arial"},
		Fill:      solidFill(clrTitleBG),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("subtitle style: %w", err)
	}

	if err := f.MergeCell(detailSheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	title := fmt.Sprintf("%s  –  %s", strings.ToUpper(meta.Organization), strings.ToUpper(meta.Title))
	f.SetCellValue(detailSheet, "A1", title)
	f.SetCellStyle(detailSheet, "A1", lastCol+"1", titleStyle)
	f.SetRowHeight(detailSheet, 1, 30)

	if err := f.MergeCell(detailSheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge subtitle: %w", err)
	}
	windowEnd := meta.ReferenceDate.AddDate(0, 0, meta.LookaheadDays)
	subtitle := fmt.Sprintf("Report Generated: %s  |  Loans Due: %s – %s  |  Total Records: %d",
		meta.ReferenceDate.Format("Monday, 02 January 2006"),
		meta.ReferenceDate.Format("02 Jan"),
		windowEnd.Format("02 Jan 2006"),
		len(table))
	f.SetCellValue(detailSheet, "A2", subtitle)
	f.SetCellStyle(detailSheet, "A2", lastCol+"2", subStyle)
	f.SetRowHeight(detailSheet, 2, 18)

	f.SetRowHeight(detailSheet, 3, 6)

	// Column header band on row 4.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrHeaderFG, Size: 10, Family: "Arial"},
		Fill:      solidFill(clrHeaderBG),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, name := range domain.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(detailSheet, cell, name)
	}
	f.SetCellStyle(detailSheet, "A4", lastCol+"4", headerStyle)
	f.SetRowHeight(detailSheet, 4, 32)

	styles := map[string]cellStyles{}
	for _, fill := range []string{clrOverdueBG, clrAltRow, clrWhite} {
		set, err := buildCellStyles(f, fill)
		if err != nil {
			return fmt.Errorf("cell styles for %s: %w", fill, err)
		}
		styles[fill] = set
	}

	for i, rec := range table {
		row := i + 5
		fill := clrWhite
		switch {
		case rec.FlaggedOverdue():
			fill = clrOverdueBG
		case row%2 == 0:
			fill = clrAltRow
		}
		if err := writeDetailRow(f, row, rec, styles[fill]); err != nil {
			return err
		}
		f.SetRowHeight(detailSheet, row, 20)
	}

	for i, width := range detailColWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(detailSheet, col, col, width)
	}

	if err := f.SetPanes(detailSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header rows: %w", err)
	}

	return nil
}

func writeDetailRow(f *excelize.File, row int, rec domain.LoanRecord, styles cellStyles) error {
	daysStyle := styles.daysNormal
	switch {
	case rec.DaysRemaining < 0:
		daysStyle = styles.daysOverdue
	case rec.DaysRemaining <= 3:
		daysStyle = styles.daysWarn
	}

	statusStyle := styles.statusOK
	if rec.Status == domain.StatusOverdue {
		statusStyle = styles.statusOverdue
	}

	cells := []struct {
		value any
		style int
	}{
		{rec.CustomerName, styles.text},
		{rec.LoanID, styles.text},
		{rec.AmountBorrowed.InexactFloat64(), styles.money},
		{rec.OutstandingBalance.InexactFloat64(), styles.money},
		{rec.DueDate.Format("2006-01-02"), styles.center},
		{rec.DaysRemaining, daysStyle},
		{rec.Phone, styles.text},
		{rec.Email, styles.text},
		{rec.OfficerBranch, styles.text},
		{string(rec.Status), statusStyle},
	}

	for col, c := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(detailSheet, cell, c.value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(detailSheet, cell, cell, c.style); err != nil {
			return fmt.Errorf("style cell %s: %w", cell, err)
		}
	}

	return nil
}

func (r *ExcelRenderer) writeSummarySheet(f *excelize.File, stats domain.SummaryStats, meta ports.ReportMeta) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	off := false
	if err := f.SetSheetView(summarySheet, -1, &excelize.ViewOptions{ShowGridLines: &off}); err != nil {
		return fmt.Errorf("hide gridlines: %w", err)
	}

	f.SetColWidth(summarySheet, "A", "A", 30)
	f.SetColWidth(summarySheet, "B", "B", 20)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrHeaderFG, Size: 13, Family: "Arial"},
		Fill:      solidFill(clrTitleBG),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("summary title style: %w", err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrHeaderFG, Size: 10, Family: "Arial"},
		Fill:      solidFill(clrHeaderBG),
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("summary section style: %w", err)
	}

	labelStyles := map[string]int{}
	valueStyles := map[string]int{}
	for _, fill := range []string{clrSummaryBG, clrWhite} {
		labelStyles[fill], err = f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Size: 10, Family: "Arial"},
			Fill:      solidFill(fill),
			Alignment: &excelize.Alignment{Vertical: "center"},
			Border:    thinBorder(),
		})
		if err != nil {
			return fmt.Errorf("summary label style: %w", err)
		}
		valueStyles[fill], err = f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10, Family: "Arial"},
			Fill:      solidFill(fill),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorder(),
		})
		if err != nil {
			return fmt.Errorf("summary value style: %w", err)
		}
	}

	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return fmt.Errorf("merge summary title: %w", err)
	}
	f.SetCellValue(summarySheet, "A1", "LOAN REPORT SUMMARY")
	f.SetCellStyle(summarySheet, "A1", "B1", titleStyle)
	f.SetRowHeight(summarySheet, 1, 28)

	period := fmt.Sprintf("Next %d Days", meta.LookaheadDays)
	if meta.IncludeOverdue {
		period += " + Overdue"
	}

	rows := []struct {
		label string
		value any
	}{
		{"Report Date", meta.ReferenceDate.Format("02 January 2006")},
		{"Reporting Period", period},
		{"", ""},
		{"LOAN COUNTS", ""},
		{"Total Loans in Report", stats.TotalCount},
		{"Active Loans", stats.ActiveCount},
		{"Overdue Loans", stats.OverdueCount},
		{"", ""},
		{"FINANCIAL SUMMARY", ""},
		{"Total Amount Borrowed", domain.FormatMoney(stats.TotalBorrowed)},
		{"Total Outstanding", domain.FormatMoney(stats.TotalOutstanding)},
		{"Overdue Outstanding", domain.FormatMoney(stats.OverdueOutstanding)},
		{"", ""},
		{"DUE THIS WEEK", ""},
		{"Due Today", stats.DueToday},
		{"Due in 1-3 Days", stats.Due1to3},
		{"Due in 4-7 Days", stats.Due4to7},
		{"Already Overdue", stats.AlreadyOverdue},
	}

	sections := map[string]bool{"LOAN COUNTS": true, "FINANCIAL SUMMARY": true, "DUE THIS WEEK": true}

	for i, entry := range rows {
		row := i + 2
		labelCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)

		f.SetCellValue(summarySheet, labelCell, entry.label)
		f.SetCellValue(summarySheet, valueCell, entry.value)

		switch {
		case sections[entry.label]:
			f.SetCellStyle(summarySheet, labelCell, valueCell, sectionStyle)
		case entry.label == "":
			// spacer row, keep default styling
		default:
			fill := clrWhite
			if row%2 == 0 {
				fill = clrSummaryBG
			}
			f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyles[fill])
			f.SetCellStyle(summarySheet, valueCell, valueCell, valueStyles[fill])
		}
		f.SetRowHeight(summarySheet, row, 20)
	}

	return nil
}

func buildCellStyles(f *excelize.File, fill string) (cellStyles, error) {
	var (
		set cellStyles
		err error
	)

	base := func(s *excelize.Style) *excelize.Style {
		s.Fill = solidFill(fill)
		s.Border = thinBorder()
		return s
	}

	if set.text, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})); err != nil {
		return set, err
	}

	if set.money, err = f.NewStyle(base(&excelize.Style{
		Font:         &excelize.Font{Size: 10, Family: "Arial"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &moneyFormat,
	})); err != nil {
		return set, err
	}

	if set.center, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	if set.daysOverdue, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrOverdueFG, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	if set.daysWarn, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrWarnFG, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	if set.daysNormal, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	if set.statusOverdue, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrOverdueFG, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	if set.statusOK, err = f.NewStyle(base(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: clrActiveFG, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})); err != nil {
		return set, err
	}

	return set, nil
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: clrBorder, Style: 1},
		{Type: "right", Color: clrBorder, Style: 1},
		{Type: "top", Color: clrBorder, Style: 1},
		{Type: "bottom", Color: clrBorder, Style: 1},
	}
}
