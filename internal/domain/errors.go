package domain

import "fmt"

// DataSourceError aborts the run before any rendering.
type DataSourceError struct {
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %v", e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// MalformedRecordError marks a single unusable source row. The run
// continues without the row.
type MalformedRecordError struct {
	LoanID string
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("loan %s: malformed %s %q: %v", e.LoanID, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// RenderError aborts the run before delivery; no artifact is referenced.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s report: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// DeliveryError ends the run in a failed state. ArtifactPath points at the
// rendered file, which is preserved on disk for manual retrieval.
type DeliveryError struct {
	ArtifactPath string
	Err          error
}

func (e *DeliveryError) Error() string {
	if e.ArtifactPath == "" {
		return fmt.Sprintf("deliver report: %v", e.Err)
	}
	return fmt.Sprintf("deliver report (artifact kept at %s): %v", e.ArtifactPath, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
