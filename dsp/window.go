// Package dsp provides signal-processing primitives for feature extraction
// front-ends, currently the cosine-sum window function family.
package dsp

import (
	"math"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Symmetry selects the window variant: Symmetric windows suit filter design,
// Periodic ones spectral analysis with the FFT.
type Symmetry int

//go:generate go tool enumer -type=Symmetry -output=gen_symmetry_enumer.go window.go
const (
	Symmetric Symmetry = iota
	Periodic
)

// GeneralizedCosineWindow samples a cosine-sum window of the given size:
//
//	w[n] = sum_k (-1)^k coefficients[k] * cos(2*pi*k*n / N)
//
// where N is size-1 for a Symmetric window and size for a Periodic one.
func GeneralizedCosineWindow[T constraints.Float](size int, coefficients []T, symmetry Symmetry) []T {
	if size <= 0 {
		exceptions.Panicf("dsp: window size must be positive, got %d", size)
	}
	denominator := float64(size - 1)
	if symmetry == Periodic {
		denominator = float64(size)
	}
	if denominator == 0 {
		denominator = 1 // size 1: every cosine argument is 0 anyway
	}
	window := make([]T, size)
	for n := range window {
		var w float64
		sign := 1.0
		for k, a := range coefficients {
			w += sign * float64(a) * math.Cos(2*math.Pi*float64(k)*float64(n)/denominator)
			sign = -sign
		}
		window[n] = T(w)
	}
	return window
}

// HammingWindow samples the Hamming window, the two-term cosine-sum window
// with coefficients 0.54 and 0.46.
func HammingWindow[T constraints.Float](size int, symmetry Symmetry) []T {
	return GeneralizedCosineWindow(size, []T{0.54, 0.46}, symmetry)
}

// HannWindow samples the Hann window, the two-term cosine-sum window with
// coefficients 0.5 and 0.5. Its symmetric form reaches exactly 0 at both
// ends.
func HannWindow[T constraints.Float](size int, symmetry Symmetry) []T {
	return GeneralizedCosineWindow(size, []T{0.5, 0.5}, symmetry)
}
