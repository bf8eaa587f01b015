package mirror

import (
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/mirror/internal/logger"
)

// flattener walks the root tree depth-first and copies each qualifying file
// into the flat mirror folder. It is single-threaded; the only walk state is
// the recursion stack and a per-directory index of qualifying files.
type flattener struct {
	settings *Settings
	log      logger.Logger
	report   *RunReport
}

// flatten mirrors every qualifying file under dir. segments is the relative
// path of dir from the root, one element per directory level; it is nil for
// the root itself.
//
// Entries are processed in filesystem enumeration order. That order is not
// guaranteed sorted, but the per-directory index assignment is consistent
// within a run, which is all the positional naming policy needs.
//
// I/O failures never abort the walk: an unlistable directory skips its whole
// subtree, an uncopyable file skips just that file, and in both cases the
// walk continues at the sibling level.
func (f *flattener) flatten(dir string, segments []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		f.log.Errorf("Skipping folder '%s' because it could not be listed! (%v)", dir, err)
		f.report.Errors++
		return
	}

	index := 0
	for _, entry := range entries {
		name := entry.Name()

		if f.settings.excluded(name) {
			f.log.Debugf("Skipping '%s' because it starts with '.' and it is not added as an exclusion override.", filepath.Join(dir, name))
			f.report.SkippedExcluded++
			continue
		}

		path := filepath.Join(dir, name)

		if entry.IsDir() {
			child := make([]string, len(segments), len(segments)+1)
			copy(child, segments)
			child = append(child, name)
			f.flatten(path, child)
			continue
		}

		// Plain files directly in the root have no path segments to encode;
		// only folders belong at the top level.
		if len(segments) == 0 {
			f.log.Warnf("Ignoring file '%s' because it is not a folder, only folders should be in the root folder.", name)
			f.report.Warnings++
			continue
		}

		if ext := filepath.Ext(name); ext != "" && f.settings.disqualified(ext) {
			f.log.Debugf("Skipping file '%s' because its extension is disqualified.", path)
			f.report.SkippedDisqualified++
			continue
		}

		base, ext, ok := splitExtension(name)
		if !ok {
			f.log.Warnf("No file name extension found on file '%s' !!! (Defaulting to .unknown)", name)
			f.report.Warnings++
			ext = "unknown"
		}

		destName := encodeName(segments, base, ext, index, f.settings)
		index++

		destPath := filepath.Join(f.settings.MirrorDir, destName)
		f.log.Debugf("Copying file '%s' to '%s' ..", name, destPath)

		if err := copyFile(path, destPath); err != nil {
			f.log.Errorf("Skipping file '%s' because it could not be copied! (%v)", path, err)
			f.report.Errors++
			f.report.SkippedErrors++
			continue
		}
		f.report.Copied++
	}
}

// copyFile copies the source file's bytes verbatim to dst, truncating any
// existing destination. Name collisions therefore resolve to last-writer-wins,
// which is accepted behavior of the encoding scheme.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
