// Package kepler reads Kepler light curve data products. ReadSegment decodes
// one quarter of PDC-corrected photometry from a FITS light curve file, and
// Loader locates the files for a star under a local mirror of the public
// archive layout.
//
// Only the subset of FITS needed for light curve files is implemented: a
// primary header carrying the star's identity and a first BINTABLE extension
// holding the photometric columns. Timestamps are converted from days to
// seconds on read; missing photometry stays NaN.
package kepler
