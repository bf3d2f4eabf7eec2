// Package spectrum estimates the one-sided power spectral density of a
// uniformly sampled flux series. The estimate is a single-segment
// periodogram: the series is optionally tapered, zero-padded to a power of
// two, transformed, and scaled so that integrating the density over
// frequency recovers the signal's power. Light curves are short enough that
// segment averaging buys little; callers wanting lower variance can smooth
// the result instead.
package spectrum
