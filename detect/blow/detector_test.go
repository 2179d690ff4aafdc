package blow

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-blow/internal/testutil"
)

func newTestDetector(t testing.TB, opts ...Option) *Detector {
	t.Helper()

	d, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	return d
}

func feed(d *Detector, frames ...[]int16) []bool {
	out := make([]bool, len(frames))
	for i, f := range frames {
		out[i] = d.Evaluate(f)
	}
	return out
}

var (
	lowTone  = testutil.SinePCM16(250, testRate, 8000, testFrame)
	highTone = testutil.SinePCM16(5000, testRate, 8000, testFrame)
	silence  = testutil.SilencePCM16(testFrame)
)

func TestDetectorSilenceNeverBlows(t *testing.T) {
	d := newTestDetector(t)

	for i := range 500 {
		if d.Evaluate(silence) {
			t.Fatalf("frame %d: silence reported as blowing", i)
		}
		if s := d.Stats(); !s.Reading.Quiet || s.HasFeatures {
			t.Fatalf("frame %d: stats %+v, want quiet without features", i, s)
		}
	}
}

func TestDetectorSingleLoudFrameIsDebounced(t *testing.T) {
	d := newTestDetector(t)

	feed(d, testutil.Repeat(silence, 10)...)

	if d.Evaluate(lowTone) {
		t.Fatal("one loud frame must not be enough")
	}
	if s := d.Stats(); !s.FrameBlowing || s.Positives != 1 {
		t.Fatalf("stats %+v, want a single positive vote", s)
	}
}

func TestDetectorSustainedLowTone(t *testing.T) {
	d := newTestDetector(t)

	got := feed(d, testutil.Repeat(lowTone, 10)...)
	want := []bool{false, true, true, true, true, true, true, true, true, true}
	testutil.RequireBoolsEqual(t, got, want)
}

func TestDetectorHighToneNeverBlows(t *testing.T) {
	d := newTestDetector(t)

	for i, blowing := range feed(d, testutil.Repeat(highTone, 60)...) {
		if blowing {
			t.Fatalf("frame %d: 5 kHz tone reported as blowing", i)
		}
	}
}

func TestDetectorDebounceAcrossGap(t *testing.T) {
	d := newTestDetector(t)

	var frames [][]int16
	frames = append(frames, testutil.Repeat(silence, 10)...)
	frames = append(frames, lowTone)
	frames = append(frames, testutil.Repeat(silence, 10)...)
	frames = append(frames, lowTone, lowTone)

	got := feed(d, frames...)
	for i, blowing := range got[:len(got)-1] {
		if blowing {
			t.Fatalf("frame %d: blowing before the second consecutive loud frame", i)
		}
	}
	if !got[len(got)-1] {
		t.Fatal("expected the second consecutive loud frame to report blowing")
	}
}

func TestDetectorDeterministic(t *testing.T) {
	a := newTestDetector(t)
	b := newTestDetector(t)

	var frames [][]int16
	frames = append(frames, testutil.Repeat(silence, 5)...)
	frames = append(frames, testutil.NoisePCM16(7, 3000, testFrame))
	frames = append(frames, testutil.Repeat(lowTone, 20)...)
	frames = append(frames, testutil.Repeat(highTone, 5)...)
	frames = append(frames, testutil.NoisePCM16(9, 50, testFrame))

	for i, f := range frames {
		if a.Evaluate(f) != b.Evaluate(f) {
			t.Fatalf("frame %d: detectors disagree", i)
		}
		if a.Stats() != b.Stats() {
			t.Fatalf("frame %d: stats differ: %+v vs %+v", i, a.Stats(), b.Stats())
		}
	}
}

func TestDetectorFrameLengths(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		d := newTestDetector(t)
		short := testutil.SinePCM16(250, testRate, 8000, 100)

		for range 20 {
			d.Evaluate(short)
			s := d.Stats()
			testutil.RequireFinite(t, s.Reading.RMS, s.Features.LowFreqRatio,
				s.Features.SignatureRatio, s.Features.SignaturePeakRatio)
		}
	})

	t.Run("long frames are truncated", func(t *testing.T) {
		long := testutil.SinePCM16(250, testRate, 8000, 1000)
		ref := newTestDetector(t)
		d := newTestDetector(t)

		for i := range 20 {
			if d.Evaluate(long) != ref.Evaluate(long[:testFrame]) {
				t.Fatalf("frame %d: truncated evaluation differs", i)
			}
			if d.Stats() != ref.Stats() {
				t.Fatalf("frame %d: stats differ", i)
			}
		}
	})

	t.Run("nil", func(t *testing.T) {
		d := newTestDetector(t)
		if d.Evaluate(nil) {
			t.Fatal("nil frame reported as blowing")
		}
		if s := d.Stats(); s.Reading.RMS != 0 || !s.Reading.Quiet {
			t.Fatalf("stats %+v, want rms 0 and quiet", s)
		}
	})
}

func TestDetectorThresholdNeverBelowMinimum(t *testing.T) {
	d := newTestDetector(t)

	var frames [][]int16
	frames = append(frames, testutil.Repeat(silence, 40)...)
	frames = append(frames, testutil.Repeat(lowTone, 40)...)
	frames = append(frames, testutil.Repeat(silence, 40)...)

	for i, f := range frames {
		d.Evaluate(f)
		if thr := d.Stats().Reading.Threshold; thr < d.Config().MinThreshold {
			t.Fatalf("frame %d: threshold %v below minimum", i, thr)
		}
	}
}

func TestDetectorCombineAnd(t *testing.T) {
	d := newTestDetector(t, WithCombine(CombineAnd))

	got := feed(d, lowTone, lowTone, highTone, highTone)
	testutil.RequireBoolsEqual(t, got, []bool{false, true, true, true})

	// Flush the low-tone votes out of the window.
	for range 6 {
		d.Evaluate(highTone)
	}
	if d.Evaluate(highTone) {
		t.Fatal("high tone should not blow under the and policy")
	}
}

func TestDetectorClose(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	feed(d, lowTone, lowTone)

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if d.Evaluate(lowTone) {
		t.Fatal("closed detector reported blowing")
	}
}

func TestDetectorInvalidConfig(t *testing.T) {
	_, err := New(WithSmoothing(6, 7))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	cfg := DefaultConfig()
	cfg.FloorBlend = 0
	if _, err := NewFromConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestDetectorFrameCapacity(t *testing.T) {
	if got := newTestDetector(t).FrameCapacity(); got != testFrame {
		t.Fatalf("FrameCapacity() = %d, want %d", got, testFrame)
	}
	if got := newTestDetector(t, WithFrameRate(30)).FrameCapacity(); got != 1470 {
		t.Fatalf("FrameCapacity() at 30 fps = %d, want 1470", got)
	}
	if got := newTestDetector(t, WithMaxFrameLength(2048)).FrameCapacity(); got != 2048 {
		t.Fatalf("FrameCapacity() = %d, want 2048", got)
	}
}

func TestDetectorEvaluateDoesNotAllocate(t *testing.T) {
	t.Run("quiet frames feed the noise floor", func(t *testing.T) {
		d := newTestDetector(t)
		ambient := testutil.NoisePCM16(11, 50, testFrame)

		allocs := testing.AllocsPerRun(200, func() {
			d.Evaluate(ambient)
		})
		if allocs != 0 {
			t.Fatalf("Evaluate allocated %.1f times per call", allocs)
		}

		learned := false
		for k := range d.analyzer.floor.Len() {
			if d.analyzer.floor.At(k) > 0 {
				learned = true
				break
			}
		}
		if !learned {
			t.Fatal("expected the quiet frames to reach the noise floor")
		}
	})

	t.Run("loud frames are analyzed", func(t *testing.T) {
		d := newTestDetector(t)

		// 10 tone frames then 20 silent ones keep the tone above the
		// adaptive threshold.
		var i, analyzed int
		allocs := testing.AllocsPerRun(300, func() {
			frame := silence
			if i%30 < 10 {
				frame = lowTone
			}
			i++

			d.Evaluate(frame)
			if d.Stats().HasFeatures {
				analyzed++
			}
		})
		if allocs != 0 {
			t.Fatalf("Evaluate allocated %.1f times per call", allocs)
		}
		if analyzed < 90 {
			t.Fatalf("analyzed %d loud frames, want at least 90", analyzed)
		}
	})
}

func BenchmarkDetectorEvaluate(b *testing.B) {
	cases := []struct {
		name  string
		frame []int16
	}{
		{name: "silence", frame: silence},
		{name: "tone", frame: lowTone},
		{name: "noise", frame: testutil.NoisePCM16(3, 6000, testFrame)},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			d := newTestDetector(b)
			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				d.Evaluate(tc.frame)
			}
		})
	}
}
