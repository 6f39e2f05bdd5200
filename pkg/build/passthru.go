package build

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"
)

// stepRecord is the machine-readable shape emitted in passthru mode.
type stepRecord struct {
	Name      string    `json:"name"`
	Outcome   Outcome   `json:"outcome"`
	StartTime time.Time `json:"startTime"`
	Duration  string    `json:"duration"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// RecordWriter emits each StepResult as one JSON line, for callers that
// consume results instead of console output.
type RecordWriter struct {
	enc *json.Encoder
}

// NewRecordWriter creates a passthru sink writing to w.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{enc: json.NewEncoder(w)}
}

func (rw *RecordWriter) WriteStep(res StepResult) {
	rec := stepRecord{
		Name:      res.Name,
		Outcome:   res.Outcome,
		StartTime: res.StartTime,
		Duration:  res.Duration.String(),
	}
	if res.Err != nil {
		rec.ErrorKind = res.Err.Kind
		rec.Error = res.Err.Error()
	}
	if err := rw.enc.Encode(rec); err != nil {
		slog.Warn("could not emit step record", "step", res.Name, "error", err)
	}
}
