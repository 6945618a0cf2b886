package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
	"github.com/Don-calvins/Loan-Automation/internal/report"
)

var testRefDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func record(loanID string, dueDate time.Time, days int, status domain.LoanStatus) domain.LoanRecord {
	return domain.LoanRecord{
		CustomerName:       "Jane Wanjiku",
		LoanID:             loanID,
		AmountBorrowed:     decimal.NewFromInt(50000),
		OutstandingBalance: decimal.RequireFromString("12500.50"),
		DueDate:            dueDate,
		DaysRemaining:      days,
		Phone:              "+254700000001",
		Email:              "jane@example.org",
		OfficerBranch:      "P. Otieno / Westlands",
		Status:             status,
	}
}

// testTable covers both overdue signals, the due-today warning case, and
// a plain future row, already in due-date order.
func testTable() (domain.ReportTable, domain.SummaryStats, ports.ReportMeta) {
	table := domain.ReportTable{
		record("L-2", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), -2, domain.StatusActive),
		record("L-3", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0, domain.StatusActive),
		record("L-1", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 5, domain.StatusOverdue),
		record("L-4", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), 7, domain.StatusActive),
	}

	stats := report.Summarize(table, testRefDate)

	meta := ports.ReportMeta{
		Organization:   "Maisha Bora Sacco",
		Title:          "Loan Due Date Alert",
		ReferenceDate:  testRefDate,
		LookaheadDays:  7,
		IncludeOverdue: true,
	}

	return table, stats, meta
}
