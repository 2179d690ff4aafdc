// Package audiofile decodes recordings into mono PCM16 for offline scans.
package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither WAV nor MP3.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrInvalidWAV is returned when the WAV header cannot be parsed.
	ErrInvalidWAV = errors.New("audiofile: invalid wav file")
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Recording is a decoded mono PCM16 stream.
type Recording struct {
	Samples    []int16
	SampleRate int
	Channels   int // channel count of the source before downmixing
}

// Duration returns the length of the recording in seconds.
func (r Recording) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / float64(r.SampleRate)
}

// Load decodes the file at path, choosing the decoder by extension.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return DecodeWAV(f)
	case ".mp3":
		return DecodeMP3(f)
	default:
		return Recording{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeWAV reads an integer PCM WAV stream of any channel count.
func DecodeWAV(r io.ReadSeeker) (Recording, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Recording{}, ErrInvalidWAV
	}

	// Only integer PCM is decoded; WAVE_FORMAT_EXTENSIBLE is assumed to
	// carry integer samples as well.
	switch dec.WavAudioFormat {
	case wavFormatPCM, wavFormatExtensible:
	default:
		return Recording{}, fmt.Errorf("%w: wav audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Recording{}, fmt.Errorf("audiofile: decode wav: %w", err)
	}

	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	return Recording{
		Samples:    downmix(buf, int(dec.BitDepth), channels),
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
	}, nil
}

// DecodeMP3 reads an MP3 stream. The decoder always yields 16-bit stereo.
func DecodeMP3(r io.Reader) (Recording, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Recording{}, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Recording{}, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	const channels = 2

	frames := len(raw) / (2 * channels)
	out := make([]int16, frames)

	for i := range out {
		l := int16(binary.LittleEndian.Uint16(raw[4*i:]))
		r := int16(binary.LittleEndian.Uint16(raw[4*i+2:]))
		out[i] = int16((int32(l) + int32(r)) / 2)
	}

	return Recording{Samples: out, SampleRate: dec.SampleRate(), Channels: channels}, nil
}

// downmix averages interleaved channels and rescales to 16 bits.
func downmix(buf *audio.IntBuffer, bitDepth, channels int) []int16 {
	channels = max(channels, 1)
	frames := len(buf.Data) / channels
	out := make([]int16, frames)

	for i := range out {
		sum := 0
		for c := range channels {
			sum += to16(buf.Data[i*channels+c], bitDepth)
		}
		out[i] = clamp16(sum / channels)
	}

	return out
}

func to16(v, bitDepth int) int {
	switch {
	case bitDepth == 8:
		// 8-bit WAV is unsigned.
		return (v - 128) << 8
	case bitDepth > 16:
		return v >> (bitDepth - 16)
	default:
		return v
	}
}

func clamp16(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
