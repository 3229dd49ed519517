package driver

import (
	"encoding/json"
	"fmt"
	"time"

	"rill/internal/diag"
	"rill/internal/observ"
	"rill/internal/source"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a front-end phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while a file is checked.
type PhaseObserver func(PhaseEvent)

type timingPayload struct {
	Path string `json:"path,omitempty"`
	observ.Report
}

// appendTimingDiagnostic attaches the phase breakdown as an info diagnostic
// whose note carries the machine-readable JSON form.
func appendTimingDiagnostic(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	msg := fmt.Sprintf("timings: total %.2f ms — %s", report.TotalMS, path)
	entry := diag.New(diag.SevInfo, diag.InfoTimings, source.Span{}, msg)
	if data, err := json.Marshal(timingPayload{Path: path, Report: report}); err == nil {
		entry = entry.WithNote(source.Span{}, string(data))
	}
	bag.Add(entry)
}
