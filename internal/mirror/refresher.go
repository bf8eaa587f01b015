package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/mirror/internal/logger"
)

// Refresher orchestrates one full mirror run: validate the root, ensure the
// mirror folder exists, erase its previous contents, and flatten the root
// tree into it.
type Refresher struct {
	settings *Settings
	log      logger.Logger
}

// NewRefresher creates a Refresher for the given settings.
// A nil log discards all output.
func NewRefresher(settings *Settings, log logger.Logger) *Refresher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Refresher{
		settings: settings,
		log:      log,
	}
}

// Refresh performs one full erase-then-rebuild run and returns its report.
//
// The root folder is validated before anything is erased, so a bad root never
// destroys an existing mirror. A missing root is the only fatal condition
// past that point; every per-entry I/O failure is logged and skipped, and the
// run completes with a report regardless of how many entries failed.
func (r *Refresher) Refresh() (*RunReport, error) {
	start := time.Now()
	report := &RunReport{
		RunID:      uuid.NewString(),
		Root:       r.settings.RootPath,
		MirrorDir:  r.settings.MirrorDir,
		NamingMode: r.settings.NamingMode(),
		StartedAt:  start,
	}

	info, err := os.Stat(r.settings.RootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("root folder %s does not exist, double check your spelling", r.settings.RootPath)
		}
		return nil, fmt.Errorf("failed to access root folder %s: %w", r.settings.RootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root folder %s is not a directory", r.settings.RootPath)
	}

	if _, err := os.Stat(r.settings.MirrorDir); os.IsNotExist(err) {
		r.log.Infof("Existing mirror folder not found, creating '%s' now!", r.settings.MirrorDir)
		if err := os.MkdirAll(r.settings.MirrorDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create mirror folder %s: %w", r.settings.MirrorDir, err)
		}
	}

	if err := r.erase(report); err != nil {
		return nil, err
	}

	r.log.Infof("Updating mirror")
	f := &flattener{
		settings: r.settings,
		log:      r.log,
		report:   report,
	}
	f.flatten(r.settings.RootPath, nil)

	report.DurationMS = time.Since(start).Milliseconds()
	return report, nil
}

// erase deletes every direct entry inside the mirror folder. The mirror is
// flat by construction, so a subdirectory found here was not created by this
// tool; rather than recurse-delete someone else's data, it is reported and
// skipped.
//
// An unlistable mirror folder is fatal: the destructive refresh protocol
// requires a verified-empty mirror before copying begins.
func (r *Refresher) erase(report *RunReport) error {
	r.log.Infof("Erasing previous mirror")

	entries, err := os.ReadDir(r.settings.MirrorDir)
	if err != nil {
		return fmt.Errorf("failed to list mirror folder %s: %w", r.settings.MirrorDir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(r.settings.MirrorDir, entry.Name())
		if entry.IsDir() {
			r.log.Warnf("Refusing to delete subdirectory '%s', the mirror folder should only contain files. Skipping it.", path)
			report.Warnings++
			continue
		}
		r.log.Debugf("Deleting '%s' from previous mirror..", path)
		if err := os.Remove(path); err != nil {
			r.log.Errorf("Failed to delete '%s' from previous mirror! (%v)", path, err)
			report.Errors++
		}
	}
	return nil
}
