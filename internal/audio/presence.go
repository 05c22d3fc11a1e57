package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/config"
)

// oto allows one context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func device() (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if otoErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoErr
}

// Presence is the audio cue for a hidden NPC. It is silent unless the NPC is
// hidden and within MaxDistance. A Presence whose device failed to open
// accepts updates and does nothing.
type Presence struct {
	cfg    config.AudioTuning
	stream *stream
	player *oto.Player
}

// Open starts the drone on the default output device. On failure the
// returned Presence is a silent stand-in and the error says why.
func Open(cfg config.AudioTuning) (*Presence, error) {
	p := &Presence{cfg: cfg}
	if cfg.Disabled {
		return p, nil
	}

	var samples []float32
	if cfg.Sample != "" {
		s, rate, err := loadWav(cfg.Sample)
		switch {
		case err != nil:
			log.Printf("Audio: %v, using drone", err)
		case rate != sampleRate:
			log.Printf("Audio: %s is %d Hz, want %d, using drone", cfg.Sample, rate, sampleRate)
		default:
			samples = s
		}
	}

	ctx, err := device()
	if err != nil {
		return p, fmt.Errorf("open audio device: %w", err)
	}
	p.stream = newStream(samples)
	p.player = ctx.NewPlayer(p.stream)
	p.player.Play()
	log.Printf("Audio: presence cue ready")
	return p, nil
}

func (p *Presence) Update(hidden bool, listener, right, source rl.Vector3) {
	if p.stream == nil {
		return
	}
	var g Gains
	if hidden {
		g = Spatialize(listener, right, source, p.cfg.RefDistance, p.cfg.MaxDistance)
		g.Left *= p.cfg.Volume
		g.Right *= p.cfg.Volume
	}
	p.stream.setTarget(g)
}

func (p *Presence) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player, p.stream = nil, nil
	return err
}
