package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Don-calvins/Loan-Automation/internal/config"
	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/infrastructure/archive"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
	"github.com/Don-calvins/Loan-Automation/internal/report"
)

var runTime = time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

type fakeSource struct {
	rows []domain.RawLoan
	err  error
}

func (f *fakeSource) FetchDue(_ context.Context, _ domain.DueQuery) ([]domain.RawLoan, error) {
	return f.rows, f.err
}

type fakeRenderer struct {
	dir   string
	err   error
	calls int
}

func (f *fakeRenderer) Name() string { return "fake" }

func (f *fakeRenderer) Render(_ domain.ReportTable, _ domain.SummaryStats, _ ports.ReportMeta) (*domain.Artifact, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	path := filepath.Join(f.dir, "Loans_Due_Report_20260310.csv")
	if err := os.WriteFile(path, []byte("loan data\n"), 0o644); err != nil {
		return nil, err
	}
	return &domain.Artifact{Path: path, Filename: filepath.Base(path), Bytes: 10}, nil
}

type fakeBodies struct{}

func (fakeBodies) HTML(_ domain.ReportTable, _ domain.SummaryStats, _ ports.ReportMeta) (string, error) {
	return "<html><body>digest</body></html>", nil
}

func (fakeBodies) Text(_ domain.SummaryStats, _ ports.ReportMeta, _ bool) string {
	return "digest"
}

type fakeMailer struct {
	err  error
	sent []ports.Message
}

func (f *fakeMailer) Send(_ context.Context, msg ports.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func dueRow(loanID, dueDate string) domain.RawLoan {
	return domain.RawLoan{
		CustomerName:       "Jane Wanjiku",
		LoanID:             loanID,
		AmountBorrowed:     decimal.NewFromInt(50000),
		OutstandingBalance: decimal.NewFromInt(12500),
		DueDate:            dueDate,
		Status:             domain.StatusActive,
	}
}

type pipelineFixture struct {
	source   *fakeSource
	renderer *fakeRenderer
	mailer   *fakeMailer
	pipeline *Pipeline
}

func newFixture(t *testing.T, source *fakeSource, mailer *fakeMailer, opts DispatchOptions) *pipelineFixture {
	t.Helper()

	renderer := &fakeRenderer{dir: t.TempDir()}
	if opts.Title == "" {
		opts.Title = "Loan Due Date Alert"
	}

	dispatcher := NewDispatcher(mailer, archive.ZipPackager{}, opts, nil)
	pipeline := NewPipeline(PipelineDeps{
		Source:     source,
		Builder:    report.NewBuilder(nil),
		Renderer:   renderer,
		Bodies:     fakeBodies{},
		Dispatcher: dispatcher,
		Report: config.ReportConfig{
			Title:        opts.Title,
			Organization: "Maisha Bora Sacco",
		},
	})

	return &pipelineFixture{source: source, renderer: renderer, mailer: mailer, pipeline: pipeline}
}

func TestRunNothingDue(t *testing.T) {
	fx := newFixture(t, &fakeSource{}, &fakeMailer{}, DispatchOptions{KeepLocalCopy: true})

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	assert.Zero(t, fx.renderer.calls)
	assert.Empty(t, fx.mailer.sent)
}

func TestRunSourceFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	fx := newFixture(t, source, &fakeMailer{}, DispatchOptions{KeepLocalCopy: true})

	err := fx.pipeline.Run(context.Background(), runTime)

	var dsErr *domain.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Zero(t, fx.renderer.calls)
	assert.Empty(t, fx.mailer.sent)
}

func TestRunRenderFailure(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	fx := newFixture(t, source, &fakeMailer{}, DispatchOptions{KeepLocalCopy: true})
	fx.renderer.err = errors.New("disk full")

	err := fx.pipeline.Run(context.Background(), runTime)

	var renderErr *domain.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "fake", renderErr.Format)
	assert.Empty(t, fx.mailer.sent)
}

func TestRunAllRowsMalformed(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{
		dueRow("L-1", "garbage"),
		dueRow("L-2", ""),
	}}
	fx := newFixture(t, source, &fakeMailer{}, DispatchOptions{KeepLocalCopy: true})

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	assert.Zero(t, fx.renderer.calls)
	assert.Empty(t, fx.mailer.sent)
}

func TestRunHappyPath(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	mailer := &fakeMailer{}
	fx := newFixture(t, source, mailer, DispatchOptions{KeepLocalCopy: true})

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "Loan Due Date Alert – 10 Mar 2026", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "digest")
	assert.Equal(t, "digest", msg.TextBody)

	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "Loans_Due_Report_20260310.csv", msg.Attachment.Filename)
	assert.FileExists(t, msg.Attachment.Path)
}

func TestRunLegacyFormatSendsTextOnly(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	mailer := &fakeMailer{}
	fx := newFixture(t, source, mailer, DispatchOptions{KeepLocalCopy: true})
	fx.pipeline.report.Format = config.FormatCSV

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Empty(t, mailer.sent[0].HTMLBody)
	assert.Equal(t, "digest", mailer.sent[0].TextBody)
}

func TestRunDeliveryFailureKeepsArtifact(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	mailer := &fakeMailer{err: fmt.Errorf("535 authentication failed")}
	// KeepLocalCopy false must not matter: a failed send never deletes.
	fx := newFixture(t, source, mailer, DispatchOptions{KeepLocalCopy: false})

	err := fx.pipeline.Run(context.Background(), runTime)

	var delErr *domain.DeliveryError
	require.ErrorAs(t, err, &delErr)
	require.NotEmpty(t, delErr.ArtifactPath)
	assert.FileExists(t, delErr.ArtifactPath)
	assert.ErrorContains(t, err, "authentication failed")
}

func TestRunCleanupAfterDelivery(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	mailer := &fakeMailer{}
	fx := newFixture(t, source, mailer, DispatchOptions{KeepLocalCopy: false})

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.NoFileExists(t, mailer.sent[0].Attachment.Path)
}

func TestRunCompressedDispatch(t *testing.T) {
	source := &fakeSource{rows: []domain.RawLoan{dueRow("L-1", "2026-03-12")}}
	mailer := &fakeMailer{}
	fx := newFixture(t, source, mailer, DispatchOptions{KeepLocalCopy: true, Compress: true})

	err := fx.pipeline.Run(context.Background(), runTime)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	att := mailer.sent[0].Attachment
	require.NotNil(t, att)
	assert.Equal(t, "Loans_Due_Report_20260310.zip", att.Filename)
	assert.FileExists(t, att.Path)
}
