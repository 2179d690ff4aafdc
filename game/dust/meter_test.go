package dust

import (
	"testing"
	"time"

	"github.com/cwbudde/algo-blow/internal/testutil"
)

const tick = time.Second / 60

func TestMeterStartsFull(t *testing.T) {
	m := NewMeter()
	if m.Level() != FullLevel || m.Clean() {
		t.Fatalf("new meter: level=%v clean=%v", m.Level(), m.Clean())
	}
	if m.Message() != PromptMessage {
		t.Fatalf("Message() = %q", m.Message())
	}
}

func TestMeterIdleKeepsLevel(t *testing.T) {
	m := NewMeter()

	for range 1000 {
		if level, cleaned := m.Update(false, tick); level != FullLevel || cleaned {
			t.Fatalf("idle update changed state: level=%v cleaned=%v", level, cleaned)
		}
	}
}

func TestMeterCleansAtDefaultRate(t *testing.T) {
	m := NewMeter()

	// 100% / 85%/s = 1.176 s, i.e. 71 ticks at 60 Hz.
	var cleanedAt []int
	for i := 1; i <= 200; i++ {
		if _, cleaned := m.Update(true, tick); cleaned {
			cleanedAt = append(cleanedAt, i)
		}
	}

	if len(cleanedAt) != 1 || cleanedAt[0] != 71 {
		t.Fatalf("cleaned at ticks %v, want [71]", cleanedAt)
	}
	if m.Level() != 0 || !m.Clean() || m.Message() != CleanMessage {
		t.Fatalf("level=%v clean=%v message=%q", m.Level(), m.Clean(), m.Message())
	}
}

func TestMeterDecreasesLinearly(t *testing.T) {
	m := NewMeter(WithRate(50))

	level, _ := m.Update(true, 500*time.Millisecond)
	testutil.RequireNear(t, "level", level, 75, 1e-12)

	m.Update(false, time.Second)
	testutil.RequireNear(t, "level after idle", m.Level(), 75, 1e-12)

	level, cleaned := m.Update(true, 10*time.Second)
	if level != 0 || !cleaned {
		t.Fatalf("level=%v cleaned=%v, want clamped to 0", level, cleaned)
	}
}

func TestMeterIgnoresNonPositiveDuration(t *testing.T) {
	m := NewMeter()
	m.Update(true, 0)
	m.Update(true, -time.Second)

	if m.Level() != FullLevel {
		t.Fatalf("level = %v, want %v", m.Level(), FullLevel)
	}
}

func TestMeterReset(t *testing.T) {
	m := NewMeter(WithStartLevel(10))
	m.Update(true, time.Second)

	if !m.Clean() {
		t.Fatal("expected meter to be clean")
	}

	m.Reset()
	if m.Clean() || m.Level() != 10 {
		t.Fatalf("after reset: level=%v clean=%v", m.Level(), m.Clean())
	}
}

func TestMeterOptionsIgnoreInvalid(t *testing.T) {
	m := NewMeter(WithRate(-1), WithRate(0), WithStartLevel(0), WithStartLevel(150), nil)

	if m.Rate() != DefaultRate || m.Level() != FullLevel {
		t.Fatalf("rate=%v level=%v, want defaults", m.Rate(), m.Level())
	}
}
