// Package analysis provides spectral tools for recorded run series.
//
//   - [FFT]: radix-2 transform, zero-padded to a power of two
//   - [PowerSpectrum]: magnitudes of the non-negative frequency bins
//   - [DominantPeriod]: period of the strongest oscillation in a series
//
// Orbiting bodies make kinetic energy oscillate; the dominant period of that
// series tracks the orbital period of whatever carries most of the energy:
//
//	period, ok := analysis.DominantPeriod(kinetic, sampleDt)
package analysis
