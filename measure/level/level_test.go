package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-blow/internal/testutil"
)

func TestRMS16(t *testing.T) {
	tests := []struct {
		name  string
		frame []int16
		want  float64
	}{
		{name: "empty", frame: nil, want: 0},
		{name: "silence", frame: make([]int16, 16), want: 0},
		{name: "dc", frame: []int16{100, -100, 100, -100}, want: 100},
		{name: "full scale", frame: []int16{math.MinInt16, math.MinInt16}, want: 32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireNear(t, "RMS16", RMS16(tt.frame), tt.want, 1e-9)
		})
	}
}

func TestRMS16Sine(t *testing.T) {
	frame := testutil.SinePCM16(1000, 44100, 10000, 44100)
	testutil.RequireNear(t, "RMS16", RMS16(frame), 10000/math.Sqrt2, 1)
}

func TestEstimatorStartsAtMinThreshold(t *testing.T) {
	e := NewEstimator()
	if e.Threshold() != 80 {
		t.Fatalf("Threshold() = %v, want 80", e.Threshold())
	}
	if e.Window() != 30 {
		t.Fatalf("Window() = %d, want 30", e.Window())
	}
}

func TestEstimatorEmptyFrameIsQuiet(t *testing.T) {
	e := NewEstimator(WithMinThreshold(0))

	r := e.Update(nil)
	if !r.Quiet || r.RMS != 0 {
		t.Fatalf("reading = %+v, want quiet with RMS 0", r)
	}
	testutil.RequireFinite(t, r.RMS, r.Background, r.Threshold)
}

func TestEstimatorThresholdNeverBelowMinimum(t *testing.T) {
	e := NewEstimator(WithMinThreshold(50))
	frames := [][]int16{
		testutil.SilencePCM16(735),
		testutil.NoisePCM16(1, 5, 735),
		nil,
		testutil.SilencePCM16(100),
	}

	for i := range 100 {
		r := e.Update(frames[i%len(frames)])
		if r.Threshold < 50 {
			t.Fatalf("frame %d: threshold %v below minimum", i, r.Threshold)
		}
	}
}

func TestEstimatorConvergesToBackgroundTimesMultiplier(t *testing.T) {
	const amp = 1000.0

	e := NewEstimator(WithMinThreshold(80), WithBackgroundMultiplier(1.5), WithWindow(30))
	frame := testutil.SinePCM16(440, 44100, amp, 735)
	rms := RMS16(frame)

	prev := 0.0
	for i := range 30 {
		r := e.Update(frame)
		if r.Threshold < prev {
			t.Fatalf("frame %d: threshold decreased from %v to %v", i, prev, r.Threshold)
		}
		prev = r.Threshold
	}

	testutil.RequireNear(t, "background", e.Background(), rms, 1e-9)
	testutil.RequireNear(t, "threshold", e.Threshold(), rms*1.5, 1e-9)
}

func TestEstimatorMeanCoversWholeWindow(t *testing.T) {
	e := NewEstimator(WithMinThreshold(0), WithBackgroundMultiplier(2), WithWindow(4))
	frame := []int16{400, -400}

	r := e.Update(frame)
	testutil.RequireNear(t, "background", r.Background, 100, 1e-12)
	if r.Quiet {
		t.Fatal("first loud frame should not be quiet")
	}

	r = e.Update(frame)
	testutil.RequireNear(t, "threshold", r.Threshold, 400, 1e-12)
	if r.Quiet {
		t.Fatal("RMS equal to the threshold is not quiet")
	}

	r = e.Update(frame)
	testutil.RequireNear(t, "background", r.Background, 300, 1e-12)
	if !r.Quiet {
		t.Fatal("threshold 600 should mark RMS 400 as quiet")
	}
}

func TestEstimatorWrapsAndReset(t *testing.T) {
	e := NewEstimator(WithMinThreshold(0), WithWindow(2))

	e.Update([]int16{10})
	e.Update([]int16{20})
	e.Update([]int16{30})
	testutil.RequireNear(t, "background", e.Background(), 25, 1e-12)

	e.Reset()
	if e.Background() != 0 || e.Threshold() != 0 {
		t.Fatalf("after Reset: background=%v threshold=%v", e.Background(), e.Threshold())
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyOptions(WithMinThreshold(-1), WithBackgroundMultiplier(0), WithWindow(0), nil)
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func BenchmarkEstimatorUpdate(b *testing.B) {
	e := NewEstimator()
	frame := testutil.NoisePCM16(7, 2000, 735)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		e.Update(frame)
	}
}
