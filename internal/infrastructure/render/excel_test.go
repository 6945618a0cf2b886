package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelRendererRoundTrip(t *testing.T) {
	table, stats, meta := testTable()
	renderer := NewExcelRenderer(t.TempDir())

	artifact, err := renderer.Render(table, stats, meta)
	require.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, "Loans_Due_Report_20260310.xlsx", artifact.Filename)
	assert.Positive(t, artifact.Bytes)

	f, err := excelize.OpenFile(artifact.Path)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), detailSheet)
	assert.Contains(t, f.GetSheetList(), summarySheet)

	rows, err := f.GetRows(detailSheet)
	require.NoError(t, err)
	// Title, subtitle, spacer, header, then one row per loan.
	require.Len(t, rows, 4+len(table))

	header := rows[3]
	require.Len(t, header, 10)
	assert.Equal(t, "Customer Name", header[0])
	assert.Equal(t, "Days Remaining", header[5])
	assert.Equal(t, "Loan Status", header[9])

	// First data row carries the canonical column values.
	name, err := f.GetCellValue(detailSheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Jane Wanjiku", name)

	due, err := f.GetCellValue(detailSheet, "E5")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", due)

	days, err := f.GetCellValue(detailSheet, "F5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-2", days)

	// Monetary cells keep the underlying number; only display is fixed
	// to two decimals.
	amount, err := f.GetCellValue(detailSheet, "C5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "50000", amount)

	outstanding, err := f.GetCellValue(detailSheet, "D5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "12500.5", outstanding)
}

func TestExcelRendererSummarySheet(t *testing.T) {
	table, stats, meta := testTable()
	renderer := NewExcelRenderer(t.TempDir())

	artifact, err := renderer.Render(table, stats, meta)
	require.NoError(t, err)

	f, err := excelize.OpenFile(artifact.Path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, cellErr := f.GetCellValue(summarySheet, ref)
		require.NoError(t, cellErr)
		return v
	}

	assert.Equal(t, "LOAN REPORT SUMMARY", cell("A1"))
	assert.Equal(t, "Next 7 Days + Overdue", cell("B3"))

	assert.Equal(t, "Total Loans in Report", cell("A6"))
	assert.Equal(t, "4", cell("B6"))
	assert.Equal(t, "3", cell("B7")) // active
	assert.Equal(t, "1", cell("B8")) // overdue by status

	assert.Equal(t, "12,500.50", cell("B13")) // overdue outstanding

	assert.Equal(t, "1", cell("B16")) // due today
	assert.Equal(t, "0", cell("B17")) // due 1-3
	assert.Equal(t, "2", cell("B18")) // due 4-7
	assert.Equal(t, "1", cell("B19")) // already overdue
}

func TestExcelRendererDueTodayWarningStyle(t *testing.T) {
	table, stats, meta := testTable()
	renderer := NewExcelRenderer(t.TempDir())

	artifact, err := renderer.Render(table, stats, meta)
	require.NoError(t, err)

	f, err := excelize.OpenFile(artifact.Path)
	require.NoError(t, err)
	defer f.Close()

	// Row 6 is the due-today record, row 8 the plain seven-day record.
	// The warning emphasis must make their days cells style differently.
	warn, err := f.GetCellStyle(detailSheet, "F6")
	require.NoError(t, err)
	normal, err := f.GetCellStyle(detailSheet, "F8")
	require.NoError(t, err)
	assert.NotEqual(t, warn, normal)

	// Overdue rows get a distinct background from non-overdue rows in
	// the same parity position.
	overdueRow, err := f.GetCellStyle(detailSheet, "A5")
	require.NoError(t, err)
	normalRow, err := f.GetCellStyle(detailSheet, "A8")
	require.NoError(t, err)
	assert.NotEqual(t, overdueRow, normalRow)
}
