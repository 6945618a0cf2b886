package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

const dateLayout = "2006-01-02"

// LoanSource reads due loans from the loan-book Postgres database. The
// schema is owned by the upstream core-banking system; this side only
// ever issues the one SELECT.
type LoanSource struct {
	pool   *pgxpool.Pool
	logger *logrus.Entry
}

var _ ports.LoanSource = (*LoanSource)(nil)

// NewLoanSource wires a connection pool and a component logger.
func NewLoanSource(pool *pgxpool.Pool, logger *logrus.Entry) *LoanSource {
	return &LoanSource{pool: pool, logger: logger}
}

// Connect creates a connection pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// FetchDue returns all non-Paid loans inside the lookahead window, joined
// with customer contact and branch/officer fields, ordered ascending by
// due date. With IncludeOverdue set, every past-due loan qualifies
// regardless of age.
func (s *LoanSource) FetchDue(ctx context.Context, q domain.DueQuery) ([]domain.RawLoan, error) {
	sqlStr, args, err := buildDueLoansQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build due loans query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query due loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.RawLoan
	for rows.Next() {
		var (
			loan   domain.RawLoan
			status string
		)
		if err := rows.Scan(
			&loan.CustomerName,
			&loan.LoanID,
			&loan.AmountBorrowed,
			&loan.OutstandingBalance,
			&loan.DueDate,
			&loan.Phone,
			&loan.Email,
			&loan.Officer,
			&loan.Branch,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan loan row: %w", err)
		}
		loan.Status = domain.LoanStatus(status)
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan rows: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"rows":            len(loans),
			"lookahead_days":  q.LookaheadDays,
			"include_overdue": q.IncludeOverdue,
		}).Info("fetched due loans")
	}

	return loans, nil
}

func buildDueLoansQuery(q domain.DueQuery) (string, []any, error) {
	today := q.ReferenceDate.Format(dateLayout)
	cutoff := q.ReferenceDate.AddDate(0, 0, q.LookaheadDays).Format(dateLayout)

	// Every nullable column is coalesced so a dirty row degrades per
	// record instead of failing the scan and aborting the whole run. An
	// empty due date falls out later as a skipped malformed record.
	builder := sq.Select(
		"COALESCE(c.full_name, '')",
		"l.loan_id::text",
		"COALESCE(l.amount_borrowed, 0)",
		"COALESCE(l.outstanding_balance, 0)",
		"COALESCE(l.due_date::text, '')",
		"COALESCE(c.phone_number, '')",
		"COALESCE(c.email, '')",
		"COALESCE(b.loan_officer, '')",
		"COALESCE(b.branch_name, '')",
		"COALESCE(l.loan_status, '')",
	).
		From("loans l").
		Join("customers c ON l.customer_id = c.customer_id").
		Join("branches b ON l.branch_id = b.branch_id").
		Where(sq.NotEq{"l.loan_status": string(domain.StatusPaid)}).
		Where(sq.LtOrEq{"l.due_date": cutoff}).
		OrderBy("l.due_date ASC").
		PlaceholderFormat(sq.Dollar)

	if !q.IncludeOverdue {
		builder = builder.Where(sq.GtOrEq{"l.due_date": today})
	}

	return builder.ToSql()
}
