package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// DispatchOptions fix the packaging and retention behavior per run.
type DispatchOptions struct {
	Title         string
	Compress      bool
	KeepLocalCopy bool
}

// Dispatcher packages the artifact, composes the notification, and
// delivers it. On delivery failure the artifact stays on disk and its
// location is surfaced through the returned error.
type Dispatcher struct {
	mailer   ports.Mailer
	packager ports.Packager
	opts     DispatchOptions
	logger   *logrus.Entry
}

// NewDispatcher wires the mail transport and packaging collaborators.
func NewDispatcher(mailer ports.Mailer, packager ports.Packager, opts DispatchOptions, logger *logrus.Entry) *Dispatcher {
	return &Dispatcher{mailer: mailer, packager: packager, opts: opts, logger: logger}
}

// Dispatch sends the report message. artifact may be nil for a
// summary-only message in degraded scenarios.
func (d *Dispatcher) Dispatch(ctx context.Context, artifact *domain.Artifact, htmlBody, textBody string, runDate time.Time) error {
	msg := ports.Message{
		Subject:  fmt.Sprintf("%s – %s", d.opts.Title, runDate.Format("02 Jan 2006")),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	var zipPath string
	if artifact != nil {
		attachPath := artifact.Path
		attachName := artifact.Filename

		if d.opts.Compress {
			zipPath = zipName(artifact.Path)
			if err := d.packager.Package(zipPath, artifact.Path); err != nil {
				return &domain.DeliveryError{ArtifactPath: artifact.Path, Err: fmt.Errorf("package artifact: %w", err)}
			}
			attachPath = zipPath
			attachName = filepath.Base(zipPath)
		}

		msg.Attachment = &ports.Attachment{Filename: attachName, Path: attachPath}
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		path := ""
		if artifact != nil {
			path = artifact.Path
			if d.logger != nil {
				d.logger.WithField("path", path).Error("delivery failed; report kept on disk")
			}
		}
		return &domain.DeliveryError{ArtifactPath: path, Err: err}
	}

	if artifact != nil && !d.opts.KeepLocalCopy {
		d.removeLocal(artifact.Path)
		if zipPath != "" {
			d.removeLocal(zipPath)
		}
	}

	return nil
}

// removeLocal deletes a staged file after successful delivery. Deletion
// failure is logged, never escalated.
func (d *Dispatcher) removeLocal(path string) {
	if err := os.Remove(path); err != nil {
		if d.logger != nil {
			d.logger.WithError(err).WithField("path", path).Warn("could not remove local report copy")
		}
		return
	}
	if d.logger != nil {
		d.logger.WithField("path", path).Info("local report copy removed")
	}
}

func zipName(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return strings.TrimSuffix(artifactPath, ext) + ".zip"
}
