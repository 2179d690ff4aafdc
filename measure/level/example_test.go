package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-blow/measure/level"
)

func ExampleEstimator() {
	e := level.NewEstimator(level.WithWindow(4))

	r := e.Update([]int16{400, -400, 400, -400})
	fmt.Printf("rms=%.0f threshold=%.0f quiet=%v\n", r.RMS, r.Threshold, r.Quiet)

	r = e.Update(make([]int16, 4))
	fmt.Printf("rms=%.0f threshold=%.0f quiet=%v\n", r.RMS, r.Threshold, r.Quiet)

	// Output:
	// rms=400 threshold=200 quiet=false
	// rms=0 threshold=200 quiet=true
}
