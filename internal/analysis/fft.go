package analysis

import (
	"math"
	"math/cmplx"
)

// FFT transforms data, zero-padding it to the next power of two.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	padded := make([]complex128, n)
	for i, v := range data {
		padded[i] = complex(v, 0)
	}
	return fft(padded)
}

func fft(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		return data
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod returns the period of the strongest non-constant frequency
// in data sampled every dt. The mean is removed first. ok is false for
// series too short or too flat to have one.
func DominantPeriod(data []float64, dt float64) (period float64, ok bool) {
	if len(data) < 4 || dt <= 0 {
		return 0, false
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 || ps[best] < 1e-12 {
		return 0, false
	}

	n := nextPow2(len(data))
	return float64(n) * dt / float64(best), true
}
