package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

func tickTime(tick int, step time.Duration) time.Duration {
	return time.Duration(tick-1) * step
}

func printResult(w io.Writer, res result, frames bool) {
	fmt.Fprintf(w, "%s: %d Hz, %d ch, %.2f s, %d ticks of %d samples\n",
		res.path, res.sampleRate, res.channels, res.duration, res.ticks, res.frameLen)

	a := res.analysis
	fmt.Fprintf(w, "  analysis: %d-point FFT, %.2f Hz bins, %s window (ENBW %.2f bins, sidelobe %.1f dB)\n",
		a.fftSize, a.binWidth, a.window.Name, a.enbw, a.window.HighestSidelobe)
	fmt.Fprintf(w, "  level: rms %.1f dBFS, peak %.1f dBFS, crest %.1f, %d clipped\n",
		res.summary.RMSDBFS(), res.summary.PeakDBFS(), res.summary.CrestFactor(), res.summary.Clipped)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(res.spans) == 0 {
		fmt.Fprintln(tw, "  no blowing detected")
	} else {
		fmt.Fprintln(tw, "  SPAN\tFIRST\tLAST\tSTART\tLENGTH")
		for i, sp := range res.spans {
			fmt.Fprintf(tw, "  %d\t%d\t%d\t%v\t%v\n", i+1, sp.first, sp.last,
				tickTime(sp.first, res.tick).Round(time.Millisecond),
				(time.Duration(sp.ticks()) * res.tick).Round(time.Millisecond))
		}
	}
	tw.Flush()

	if res.cleanTick > 0 {
		fmt.Fprintf(w, "  clean at tick %d (%v)\n", res.cleanTick,
			tickTime(res.cleanTick, res.tick).Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "  not clean, %.1f%% dust left\n", res.finalLevel)
	}

	if frames {
		printFrames(w, res)
	}

	fmt.Fprintln(w)
}

func printFrames(w io.Writer, res result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TICK\tRMS\tTHRESH\tQUIET\tLOW\tSIG\tPEAK\tVOTES\tBLOW\tDUST\t")

	for _, row := range res.frames {
		st, stats := row.state, row.stats

		low, sig, peak := "-", "-", "-"
		if stats.HasFeatures {
			low = fmt.Sprintf("%.3f", stats.Features.LowFreqRatio)
			sig = fmt.Sprintf("%.3f", stats.Features.SignatureRatio)
			peak = fmt.Sprintf("%.1f", stats.Features.SignaturePeakRatio)
		}

		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%v\t%s\t%s\t%s\t%d\t%v\t%.1f\t\n",
			st.Tick, stats.Reading.RMS, stats.Reading.Threshold, stats.Reading.Quiet,
			low, sig, peak, stats.Positives, st.Blowing, st.Level)
	}

	tw.Flush()
}
