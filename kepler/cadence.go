package kepler

import "fmt"

// Cadence is the sampling mode of a Kepler light curve. Long cadence samples
// roughly every 30 minutes, short cadence roughly every minute.
type Cadence int

const (
	CadenceLong Cadence = iota
	CadenceShort
)

// String returns "long" or "short".
func (c Cadence) String() string {
	switch c {
	case CadenceLong:
		return "long"
	case CadenceShort:
		return "short"
	}
	return fmt.Sprintf("Cadence(%d)", int(c))
}

// ParseCadence converts "long" or "short" into a Cadence.
func ParseCadence(s string) (Cadence, error) {
	switch s {
	case "long":
		return CadenceLong, nil
	case "short":
		return CadenceShort, nil
	}
	return 0, fmt.Errorf("kepler: unknown cadence %q", s)
}

// cadenceFromObsMode maps the OBSMODE header value onto a Cadence. The
// archive writes "long cadence" for long-cadence products; anything else is
// treated as short cadence.
func cadenceFromObsMode(mode string) Cadence {
	if mode == "long cadence" {
		return CadenceLong
	}
	return CadenceShort
}

// fileSuffix returns the archive filename suffix for the cadence.
func (c Cadence) fileSuffix() string {
	if c == CadenceShort {
		return "_slc.fits"
	}
	return "_llc.fits"
}
