package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
)

// Separator joining the officer and branch names into one display label.
const officerBranchSeparator = " / "

var dueDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Builder derives the canonical report table from raw source rows.
type Builder struct {
	logger *logrus.Entry
}

// NewBuilder wires an optional logger used for skipped-row reporting.
func NewBuilder(logger *logrus.Entry) *Builder {
	return &Builder{logger: logger}
}

// Build parses and derives each row, drops malformed ones, stable-sorts
// the result ascending by due date, and computes summary statistics.
// referenceDate is captured once per run by the caller; every
// days-remaining value in the output is relative to it.
func (b *Builder) Build(rows []domain.RawLoan, referenceDate time.Time) (domain.ReportTable, domain.SummaryStats) {
	ref := Midnight(referenceDate)

	table := make(domain.ReportTable, 0, len(rows))
	skipped := 0

	for _, raw := range rows {
		rec, err := buildRecord(raw, ref)
		if err != nil {
			skipped++
			if b.logger != nil {
				b.logger.WithError(err).WithField("loan_id", raw.LoanID).
					Warn("skipping malformed record")
			}
			continue
		}
		table = append(table, rec)
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].DueDate.Before(table[j].DueDate)
	})

	stats := Summarize(table, ref)
	stats.SkippedRows = skipped

	return table, stats
}

func buildRecord(raw domain.RawLoan, ref time.Time) (domain.LoanRecord, error) {
	due, err := parseDueDate(raw.DueDate)
	if err != nil {
		return domain.LoanRecord{}, &domain.MalformedRecordError{
			LoanID: raw.LoanID,
			Field:  "due_date",
			Value:  raw.DueDate,
			Err:    err,
		}
	}

	return domain.LoanRecord{
		CustomerName:       raw.CustomerName,
		LoanID:             raw.LoanID,
		AmountBorrowed:     raw.AmountBorrowed,
		OutstandingBalance: raw.OutstandingBalance,
		DueDate:            due,
		DaysRemaining:      daysBetween(ref, due),
		Phone:              raw.Phone,
		Email:              raw.Email,
		OfficerBranch:      officerBranchLabel(raw.Officer, raw.Branch),
		Status:             raw.Status,
	}, nil
}

func parseDueDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", value)
}

// Midnight normalizes a timestamp to its calendar date at UTC midnight,
// so due-date arithmetic always yields whole days.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func officerBranchLabel(officer, branch string) string {
	officer = strings.TrimSpace(officer)
	branch = strings.TrimSpace(branch)

	switch {
	case officer != "" && branch != "":
		return officer + officerBranchSeparator + branch
	case officer != "":
		return officer
	default:
		return branch
	}
}

// Summarize computes SummaryStats over a finished table. Status counts
// and days-remaining buckets are independent tallies: a row due in the
// future but marked Overdue contributes to the overdue status count while
// landing in a future bucket. Rows with more than seven days remaining
// stay out of the weekly buckets.
func Summarize(table domain.ReportTable, referenceDate time.Time) domain.SummaryStats {
	stats := domain.SummaryStats{ReferenceDate: referenceDate}

	for _, rec := range table {
		stats.TotalCount++
		stats.TotalBorrowed = stats.TotalBorrowed.Add(rec.AmountBorrowed)
		stats.TotalOutstanding = stats.TotalOutstanding.Add(rec.OutstandingBalance)

		switch rec.Status {
		case domain.StatusActive:
			stats.ActiveCount++
		case domain.StatusOverdue:
			stats.OverdueCount++
			stats.OverdueOutstanding = stats.OverdueOutstanding.Add(rec.OutstandingBalance)
		}

		switch {
		case rec.DaysRemaining < 0:
			stats.AlreadyOverdue++
		case rec.DaysRemaining == 0:
			stats.DueToday++
		case rec.DaysRemaining <= 3:
			stats.Due1to3++
		case rec.DaysRemaining <= 7:
			stats.Due4to7++
		}
	}

	return stats
}
