//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a Tone on the default audio device.
type Beeper struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewBeeper opens the audio device and starts the player with a silent tone.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		tone: NewTone(Frequency),
		ctx:  ctx,
	}
	b.player = ctx.NewPlayer(b.tone)
	b.player.Play()
	return b, nil
}

// SetActive starts or stops the tone.
func (b *Beeper) SetActive(active bool) {
	b.tone.SetActive(active)
}

// Close stops playback.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	b.tone.SetActive(false)
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
