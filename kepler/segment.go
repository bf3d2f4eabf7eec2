package kepler

// Segment is one quarter of photometry for a single star. The three arrays
// are index-aligned and equally long; Time holds seconds, Flux and FluxErr
// hold the PDC-corrected photometry with NaN marking missing samples.
type Segment struct {
	KeplerID int
	Cadence  Cadence
	Quarter  string

	Time    []float64
	Flux    []float64
	FluxErr []float64
}

// Len returns the number of samples in the segment.
func (s *Segment) Len() int { return len(s.Flux) }
