//go:build headless

package audio

import "errors"

var errNoAudio = errors.New("audio output is not available in headless builds")

// Beeper is not available in headless builds.
type Beeper struct{}

// NewBeeper always fails in headless builds.
func NewBeeper() (*Beeper, error) {
	return nil, errNoAudio
}

// SetActive does nothing.
func (b *Beeper) SetActive(bool) {}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
