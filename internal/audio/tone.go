// Package audio produces the tone that is played while the sound timer is active.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone parameters.
const (
	SampleRate    = 44100
	Frequency     = 440
	Volume        = 0.15
	bytesPerFrame = 4 // one float32 channel
	minPeriod     = 2 // samples per wave period, one high and one low sample
)

// Tone is an io.Reader producing a mono float32 little endian square wave while
// active and silence otherwise. SetActive may be called from another goroutine
// than the one reading the samples.
type Tone struct {
	active atomic.Bool
	phase  int
	period int
}

// NewTone returns an inactive tone of the given frequency in Hz. Frequencies
// above half the sample rate are limited to it.
func NewTone(frequency int) *Tone {
	if frequency <= 0 {
		frequency = Frequency
	}
	return &Tone{
		period: max(SampleRate/frequency, minPeriod),
	}
}

// SetActive starts or stops the tone.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is playing.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with whole samples, it never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerFrame
	active := t.active.Load()

	for i := range samples {
		var value float32
		if active {
			value = Volume
			if t.phase >= t.period/2 {
				value = -Volume
			}
			t.phase = (t.phase + 1) % t.period
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(value))
	}
	if !active {
		t.phase = 0
	}
	return samples * bytesPerFrame, nil
}
