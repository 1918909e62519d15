package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func samples(t *testing.T, tone *Tone, count int) []float32 {
	t.Helper()

	buf := make([]byte, count*bytesPerFrame+3)
	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, count*bytesPerFrame, n)

	result := make([]float32, count)
	for i := range result {
		result[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame:]))
	}
	return result
}

func TestToneSilentWhenInactive(t *testing.T) {
	tone := NewTone(Frequency)
	assert.False(t, tone.Active())

	for _, s := range samples(t, tone, 256) {
		assert.Equal(t, float32(0), s)
	}
}

func TestToneSquareWave(t *testing.T) {
	tone := NewTone(SampleRate / 4)
	tone.SetActive(true)
	assert.True(t, tone.Active())

	expected := []float32{Volume, Volume, -Volume, -Volume, Volume, Volume, -Volume, -Volume}
	assert.Equal(t, expected, samples(t, tone, len(expected)))

	tone.SetActive(false)
	for _, s := range samples(t, tone, 8) {
		assert.Equal(t, float32(0), s)
	}
}

func TestNewToneDefaultFrequency(t *testing.T) {
	tone := NewTone(0)
	assert.Equal(t, SampleRate/Frequency, tone.period)
}

func TestToneFrequencyAboveSampleRate(t *testing.T) {
	tone := NewTone(SampleRate * 2)
	assert.Equal(t, minPeriod, tone.period)
	tone.SetActive(true)

	expected := []float32{Volume, -Volume, Volume, -Volume}
	assert.Equal(t, expected, samples(t, tone, len(expected)))
}
