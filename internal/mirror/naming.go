package mirror

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Randomized names are 20 characters from a 52-letter alphabet. Collisions
// are theoretically possible (52^20 names) but not checked.
const (
	randomNameLength = 20
	randomAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// splitExtension splits a file name on its last ".".
// Returns ok=false when the name contains no "." at all, in which case the
// whole name is the base and the caller substitutes the "unknown" sentinel.
func splitExtension(name string) (base, ext string, ok bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, "", false
	}
	return name[:idx], name[idx+1:], true
}

// encodeName computes the flat destination name for a file.
//
// segments is the relative path of the file's parent directory from the root,
// base and ext are the split file name ("unknown" sentinel already applied),
// and index is the file's zero-based position among the qualifying files of
// its immediate parent directory.
//
// Three mutually exclusive policies:
//   - randomized: a fresh random name, path and position ignored
//   - preserve:   segments and base joined with the separator
//   - positional: segments and the sibling index joined with the separator
//
// The extension is always appended after a literal ".".
func encodeName(segments []string, base, ext string, index int, s *Settings) string {
	if s.Randomize {
		return randomName() + "." + ext
	}

	last := base
	if !s.PreserveNames {
		last = strconv.Itoa(index)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, segments...)
	parts = append(parts, last)
	return strings.Join(parts, s.PathSeparator) + "." + ext
}

// randomName draws a fixed-length name uniformly from the random alphabet.
func randomName() string {
	var b strings.Builder
	b.Grow(randomNameLength)
	for i := 0; i < randomNameLength; i++ {
		b.WriteByte(randomAlphabet[rand.IntN(len(randomAlphabet))])
	}
	return b.String()
}
