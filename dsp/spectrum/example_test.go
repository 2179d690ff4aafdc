package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-blow/dsp/spectrum"
)

func ExampleMagnitudeFromParts() {
	bins := []complex128{complex(3, 4), complex(0, 1)}
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	mag := make([]float64, len(bins))

	spectrum.SplitComplex(re, im, bins)
	spectrum.MagnitudeFromParts(mag, re, im)
	fmt.Printf("%.0f %.0f\n", mag[0], mag[1])
	// Output:
	// 5 1
}

func ExampleNoiseFloor() {
	floor, _ := spectrum.NewNoiseFloor(2, 0.5)
	floor.Update([]float64{2, 2})

	clean := make([]float64, 2)
	floor.Subtract(clean, []float64{3, 1}, 1)
	fmt.Println(clean)
	// Output:
	// [2 0]
}
