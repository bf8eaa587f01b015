// Package mirror implements one-way tree flattening: every qualifying file
// under a root folder is copied into a single flat mirror folder under a
// deterministic encoded name, and the mirror is fully erased and rebuilt on
// every run.
package mirror

import "strings"

// Settings is the validated, immutable configuration for one mirror run.
// The caller is responsible for loading and validating it; the core never
// reads ambient configuration state.
type Settings struct {
	// RootPath is the tree being flattened. Must exist and be a directory.
	RootPath string

	// MirrorDir is the flat destination folder. Created if absent, erased on
	// every run.
	MirrorDir string

	// ExclusionOverrides are dot-prefixed names that are mirrored despite the
	// default rule of skipping anything starting with ".".
	ExclusionOverrides []string

	// PathSeparator joins path segments in encoded destination names.
	PathSeparator string

	// PreserveNames selects the preserve-names policy over positional
	// indexing. Ignored when Randomize is set.
	PreserveNames bool

	// Randomize replaces encoded names with fixed-length random ones.
	// Run-scoped, never persisted.
	Randomize bool

	// DisqualifiedExtensions are extensions (with leading dot, e.g. ".ini")
	// whose files are never mirrored. Matched case-insensitively.
	DisqualifiedExtensions []string
}

// NamingMode names the destination-name policy in effect, for reports and
// logs.
func (s *Settings) NamingMode() string {
	switch {
	case s.Randomize:
		return "randomized"
	case s.PreserveNames:
		return "preserve"
	default:
		return "positional"
	}
}

// excluded reports whether an entry name is skipped by the dot-prefix rule.
// Override names bypass the rule at any depth.
func (s *Settings) excluded(name string) bool {
	if !strings.HasPrefix(name, ".") {
		return false
	}
	for _, override := range s.ExclusionOverrides {
		if name == override {
			return false
		}
	}
	return true
}

// disqualified reports whether a file extension (with leading dot) is on the
// disqualified list.
func (s *Settings) disqualified(ext string) bool {
	for _, d := range s.DisqualifiedExtensions {
		if strings.EqualFold(ext, d) {
			return true
		}
	}
	return false
}
