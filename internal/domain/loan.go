package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the durable status string supplied by the loan book.
// Source systems may carry values beyond the ones enumerated here;
// unknown statuses pass through unmodified.
type LoanStatus string

const (
	StatusActive  LoanStatus = "Active"
	StatusOverdue LoanStatus = "Overdue"
	StatusPaid    LoanStatus = "Paid"
)

// RawLoan is one joined row as returned by the loan source, before any
// derivation. DueDate is kept as the raw source value so that a dirty row
// can be rejected per record instead of failing the whole fetch.
type RawLoan struct {
	CustomerName       string
	LoanID             string
	AmountBorrowed     decimal.Decimal
	OutstandingBalance decimal.Decimal
	DueDate            string
	Phone              string
	Email              string
	Officer            string
	Branch             string
	Status             LoanStatus
}

// LoanRecord is one row of the canonical report table.
type LoanRecord struct {
	CustomerName       string
	LoanID             string
	AmountBorrowed     decimal.Decimal
	OutstandingBalance decimal.Decimal
	DueDate            time.Time
	DaysRemaining      int
	Phone              string
	Email              string
	OfficerBranch      string
	Status             LoanStatus
}

// FlaggedOverdue reports whether display logic must treat the record as
// overdue. Status and days remaining can disagree in source data; either
// signal flags the row.
func (r LoanRecord) FlaggedOverdue() bool {
	return r.Status == StatusOverdue || r.DaysRemaining < 0
}

// ReportTable is the canonical row sequence, sorted ascending by due date.
// Ties keep source-row order.
type ReportTable []LoanRecord

// Columns is the canonical column order shared by the spreadsheet, the CSV
// export, and the email table.
var Columns = []string{
	"Customer Name",
	"Loan ID",
	"Amount Borrowed",
	"Outstanding Balance",
	"Due Date",
	"Days Remaining",
	"Phone Number",
	"Email",
	"Loan Officer / Branch",
	"Loan Status",
}

// SummaryStats is computed once per run over the finished table.
// Status-based counts and the days-remaining buckets are independent
// views of the same rows and are reported side by side.
type SummaryStats struct {
	ReferenceDate time.Time

	TotalCount   int
	ActiveCount  int
	OverdueCount int

	TotalBorrowed      decimal.Decimal
	TotalOutstanding   decimal.Decimal
	OverdueOutstanding decimal.Decimal

	AlreadyOverdue int
	DueToday       int
	Due1to3        int
	Due4to7        int

	SkippedRows int
}

// DueQuery carries the selection parameters for one run.
type DueQuery struct {
	ReferenceDate  time.Time
	LookaheadDays  int
	IncludeOverdue bool
}

// Artifact is a rendered report file staged on disk for delivery.
type Artifact struct {
	Path     string
	Filename string
	Bytes    int64
}
