package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/config"
	"github.com/Don-calvins/Loan-Automation/internal/infrastructure/archive"
	"github.com/Don-calvins/Loan-Automation/internal/infrastructure/mail"
	renderinfra "github.com/Don-calvins/Loan-Automation/internal/infrastructure/render"
	schedinfra "github.com/Don-calvins/Loan-Automation/internal/infrastructure/scheduler"
	"github.com/Don-calvins/Loan-Automation/internal/infrastructure/storage"
	"github.com/Don-calvins/Loan-Automation/internal/logging"
	"github.com/Don-calvins/Loan-Automation/internal/render"
	"github.com/Don-calvins/Loan-Automation/internal/report"
	"github.com/Don-calvins/Loan-Automation/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *logrus.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *logrus.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run connects to the loan book, assembles the pipeline, and executes it
// once — or keeps it running on the configured interval in daemon mode.
func (a *Application) Run(ctx context.Context) error {
	pool, err := storage.Connect(ctx, a.cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect loan database: %w", err)
	}
	defer pool.Close()

	source := storage.NewLoanSource(pool, a.logger.WithField("component", "source"))
	builder := report.NewBuilder(a.logger.WithField("component", "builder"))

	registry := render.NewRegistry()
	registry.Register(renderinfra.NewExcelRenderer(a.cfg.Report.OutputDir))
	registry.Register(renderinfra.NewCSVRenderer(a.cfg.Report.OutputDir))

	renderer, err := registry.Resolve(a.cfg.Report.Format)
	if err != nil {
		return err
	}

	mailer := mail.NewSMTPMailer(a.cfg.SMTP, a.cfg.Mail)
	dispatcher := usecase.NewDispatcher(mailer, archive.ZipPackager{}, usecase.DispatchOptions{
		Title:         a.cfg.Report.Title,
		Compress:      a.cfg.Report.Compress,
		KeepLocalCopy: a.cfg.Report.KeepLocalCopy(),
	}, a.logger.WithField("component", "dispatcher"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Builder:    builder,
		Renderer:   renderer,
		Bodies:     renderinfra.NewBodyBuilder(),
		Dispatcher: dispatcher,
		Report:     a.cfg.Report,
		Logger:     a.logger.WithField("component", "pipeline"),
	})

	if !a.cfg.Scheduler.Enabled {
		return pipeline.Run(ctx, time.Now())
	}

	driver := schedinfra.NewIntervalScheduler(a.cfg.Scheduler.Every())
	sched := usecase.NewScheduler(driver, pipeline, a.logger.WithField("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}
