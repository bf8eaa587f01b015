package mirror

import "time"

// RunReport summarizes one completed mirror refresh.
// It is serialized as-is (YAML) when the user asks for a report file, and
// recorded in the run-history database when that is enabled.
type RunReport struct {
	// RunID uniquely identifies this refresh.
	RunID string `yaml:"run_id"`

	// Root and MirrorDir are the resolved paths the run operated on.
	Root      string `yaml:"root"`
	MirrorDir string `yaml:"mirror_dir"`

	// NamingMode is the destination-name policy that was in effect:
	// preserve, positional or randomized.
	NamingMode string `yaml:"naming_mode"`

	StartedAt  time.Time `yaml:"started_at"`
	DurationMS int64     `yaml:"duration_ms"`

	// Copied counts files copied into the mirror.
	Copied int `yaml:"copied"`

	// SkippedExcluded counts entries skipped by the dot-prefix rule,
	// SkippedDisqualified counts files skipped for a disqualified extension,
	// and SkippedErrors counts files skipped because of an I/O failure.
	SkippedExcluded     int `yaml:"skipped_excluded"`
	SkippedDisqualified int `yaml:"skipped_disqualified"`
	SkippedErrors       int `yaml:"skipped_errors"`

	// Warnings and Errors count the non-fatal diagnostics emitted during the
	// run. A run with errors still completes.
	Warnings int `yaml:"warnings"`
	Errors   int `yaml:"errors"`
}

// Skipped returns the total number of entries that did not make it into the
// mirror for any reason.
func (r *RunReport) Skipped() int {
	return r.SkippedExcluded + r.SkippedDisqualified + r.SkippedErrors
}
