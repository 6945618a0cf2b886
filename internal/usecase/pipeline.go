package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/config"
	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
	"github.com/Don-calvins/Loan-Automation/internal/report"
)

// PipelineDeps wires all driven adapters into the report pipeline.
type PipelineDeps struct {
	Source     ports.LoanSource
	Builder    *report.Builder
	Renderer   ports.Renderer
	Bodies     ports.BodySource
	Dispatcher *Dispatcher
	Report     config.ReportConfig
	Logger     *logrus.Entry
}

// Pipeline implements the report-assembly workflow: select, build,
// render, dispatch. Strictly sequential, one reference date per run.
type Pipeline struct {
	source     ports.LoanSource
	builder    *report.Builder
	renderer   ports.Renderer
	bodies     ports.BodySource
	dispatcher *Dispatcher
	report     config.ReportConfig
	logger     *logrus.Entry
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		builder:    deps.Builder,
		renderer:   deps.Renderer,
		bodies:     deps.Bodies,
		dispatcher: deps.Dispatcher,
		report:     deps.Report,
		logger:     deps.Logger,
	}
}

// Run executes one report run. The reference date is captured once from
// now; every window and days-remaining computation inside the run uses it.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	logger := p.logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	logger = logger.WithField("run_id", uuid.NewString())

	ref := report.Midnight(now.In(p.report.Location()))
	window := p.report.Window()

	query := domain.DueQuery{
		ReferenceDate:  ref,
		LookaheadDays:  window,
		IncludeOverdue: p.report.IncludeOverdueLoans(),
	}

	logger.WithFields(logrus.Fields{
		"reference_date":  ref.Format("2006-01-02"),
		"lookahead_days":  query.LookaheadDays,
		"include_overdue": query.IncludeOverdue,
	}).Info("selection started")

	rows, err := p.source.FetchDue(ctx, query)
	if err != nil {
		return &domain.DataSourceError{Err: err}
	}
	logger.WithField("rows", len(rows)).Info("selection completed")

	if len(rows) == 0 {
		logger.Info("no loans due within the reporting window; nothing to send")
		return nil
	}

	table, stats := p.builder.Build(rows, ref)
	if stats.SkippedRows > 0 {
		logger.WithField("skipped", stats.SkippedRows).Warn("malformed records excluded from report")
	}
	if len(table) == 0 {
		logger.Warn("every fetched row was malformed; nothing to report")
		return nil
	}

	meta := ports.ReportMeta{
		Organization:   p.report.Organization,
		Title:          p.report.Title,
		ReferenceDate:  ref,
		LookaheadDays:  window,
		IncludeOverdue: query.IncludeOverdue,
	}

	artifact, err := p.renderer.Render(table, stats, meta)
	if err != nil {
		return &domain.RenderError{Format: p.renderer.Name(), Err: err}
	}
	logger.WithFields(logrus.Fields{
		"path":  artifact.Path,
		"bytes": artifact.Bytes,
	}).Info("rendering completed")

	// The legacy csv format ships a text-only message; the styled HTML
	// body accompanies the spreadsheet only.
	htmlBody := ""
	if p.report.Format != config.FormatCSV {
		htmlBody, err = p.bodies.HTML(table, stats, meta)
		if err != nil {
			return &domain.RenderError{Format: "html", Err: err}
		}
	}
	textBody := p.bodies.Text(stats, meta, artifact != nil)

	if err := p.dispatcher.Dispatch(ctx, artifact, htmlBody, textBody, ref); err != nil {
		return err
	}

	logger.Info("delivery completed")
	return nil
}
