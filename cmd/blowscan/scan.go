package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-blow/detect/blow"
	"github.com/cwbudde/algo-blow/dsp/spectrum"
	"github.com/cwbudde/algo-blow/dsp/window"
	"github.com/cwbudde/algo-blow/game/session"
	"github.com/cwbudde/algo-blow/internal/audiofile"
	"github.com/cwbudde/algo-blow/internal/config"
	"github.com/cwbudde/algo-blow/measure/level"
)

// span is a run of consecutive blowing ticks, first and last inclusive.
type span struct {
	first, last int
}

func (s span) ticks() int { return s.last - s.first + 1 }

// frameRow is one tick of the per-frame dump.
type frameRow struct {
	state session.State
	stats blow.Stats
}

// analysis describes the detector's spectral setup for one recording.
type analysis struct {
	fftSize  int
	binWidth float64 // Hz
	window   window.Metadata
	enbw     float64 // measured on the generated window, in bins
}

func newAnalysis(det blow.Config) analysis {
	size := det.FrameCapacity()

	a := analysis{
		fftSize:  size,
		binWidth: spectrum.BinWidth(det.SampleRate, size),
		window:   window.Info(det.Window),
	}

	if enbw, err := window.EquivalentNoiseBandwidth(window.Generate(det.Window, size)); err == nil {
		a.enbw = enbw
	}

	return a
}

type result struct {
	path       string
	sampleRate int
	channels   int
	duration   float64
	frameLen   int
	tick       time.Duration
	ticks      int
	spans      []span
	cleanTick  int // 0 when the recording never cleans the cartridge
	finalLevel float64
	summary    level.Summary
	analysis   analysis
	frames     []frameRow // only filled when rows were requested
}

func scanFile(path string, cfg *config.Config, keepFrames bool, logger *slog.Logger) (result, error) {
	rec, err := audiofile.Load(path)
	if err != nil {
		return result{}, err
	}

	logger.Debug("decoded recording", "file", path,
		"sample_rate", rec.SampleRate, "channels", rec.Channels, "samples", len(rec.Samples))

	res, err := scan(path, rec, cfg, keepFrames)
	if err != nil {
		return result{}, err
	}

	if res.summary.Clipped > 0 {
		logger.Warn("recording clips", "file", path, "samples", res.summary.Clipped)
	}

	return res, nil
}

func scan(path string, rec audiofile.Recording, cfg *config.Config, keepFrames bool) (result, error) {
	det, err := cfg.Detector.Blow(float64(rec.SampleRate))
	if err != nil {
		return result{}, err
	}

	var sum level.Summarizer
	sum.Update(rec.Samples)

	frameLen := det.FrameLength()
	src := session.NewSampleSource(rec.Samples, frameLen)

	res := result{
		path:       path,
		sampleRate: rec.SampleRate,
		channels:   rec.Channels,
		duration:   rec.Duration(),
		frameLen:   frameLen,
		summary:    sum.Result(),
		analysis:   newAnalysis(det),
	}

	obs := session.ObserverFuncs{
		Tick: func(st session.State) {
			res.ticks = st.Tick
			if !st.Blowing {
				return
			}
			if n := len(res.spans); n > 0 && res.spans[n-1].last == st.Tick-1 {
				res.spans[n-1].last = st.Tick
				return
			}
			res.spans = append(res.spans, span{first: st.Tick, last: st.Tick})
		},
		Clean: func(st session.State) {
			res.cleanTick = st.Tick
		},
	}

	s, err := session.New(src,
		session.WithDetectorConfig(det),
		session.WithMeterOptions(cfg.Dust.MeterOptions()...),
		session.WithObserver(obs),
	)
	if err != nil {
		return result{}, fmt.Errorf("%s: %w", path, err)
	}
	defer s.Close()

	res.tick = s.TickDuration()

	for {
		st, err := s.Tick()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result{}, err
		}

		if keepFrames {
			res.frames = append(res.frames, frameRow{state: st, stats: s.Detector().Stats()})
		}
	}

	res.finalLevel = s.Meter().Level()

	return res, nil
}
