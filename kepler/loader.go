package kepler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Loader locates Kepler light curve files under a local mirror of the public
// archive layout: <root>/Q<n>_public/kplr<KIC><stamp>_llc.fits, with _slc
// for short cadence and the KIC number zero-padded to nine digits.
type Loader struct {
	root string
}

// NewLoader returns a Loader rooted at root. An empty root falls back to the
// KPLR_ROOT environment variable.
func NewLoader(root string) *Loader {
	if root == "" {
		root = os.Getenv("KPLR_ROOT")
	}
	return &Loader{root: root}
}

// Root returns the data root the loader searches under.
func (l *Loader) Root() string { return l.root }

var quarterRange = regexp.MustCompile(`^[0-9](-[0-9])?$`)

// Find returns the sorted paths of every light curve file for the star
// within the quarter range, e.g. "1-9" or a single "2". The public archive
// splits quarters into single-digit Q<n>_public directories, so ranges are
// limited to one digit per bound. A star with no files in range yields an
// empty list, not an error.
func (l *Loader) Find(kic int, cadence Cadence, quarters string) ([]string, error) {
	if l.root == "" {
		return nil, errors.New("kepler: no data root configured")
	}
	if !quarterRange.MatchString(quarters) {
		return nil, fmt.Errorf("kepler: invalid quarter range %q", quarters)
	}

	pattern := filepath.Join(l.root, "Q["+quarters+"]_public",
		fmt.Sprintf("kplr%09d*%s", kic, cadence.fileSuffix()))
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("kepler: glob %s: %w", pattern, err)
	}

	sort.Strings(paths)
	return paths, nil
}
