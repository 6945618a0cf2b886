package ports

import (
	"context"
	"time"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
)

// LoanSource pulls due and overdue loans from the loan book.
type LoanSource interface {
	FetchDue(ctx context.Context, q domain.DueQuery) ([]domain.RawLoan, error)
}

// ReportMeta carries run-level display values shared by every renderer.
type ReportMeta struct {
	Organization   string
	Title          string
	ReferenceDate  time.Time
	LookaheadDays  int
	IncludeOverdue bool
}

// Renderer turns the canonical table into a file artifact.
type Renderer interface {
	Name() string
	Render(table domain.ReportTable, stats domain.SummaryStats, meta ReportMeta) (*domain.Artifact, error)
}

// Attachment references a staged file to attach by its original filename.
type Attachment struct {
	Filename string
	Path     string
}

// Message is one outbound notification with an optional attachment.
type Message struct {
	Subject    string
	HTMLBody   string
	TextBody   string
	Attachment *Attachment
}

// Mailer delivers a composed message to the fixed distribution list.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// BodySource builds the notification bodies independently of any file
// artifact.
type BodySource interface {
	HTML(table domain.ReportTable, stats domain.SummaryStats, meta ReportMeta) (string, error)
	Text(stats domain.SummaryStats, meta ReportMeta, hasAttachment bool) string
}

// Packager compresses staged files into an archive before transport.
type Packager interface {
	Package(zipPath string, files ...string) error
}

// Scheduler controls when pipeline runs execute in daemon mode.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
