package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/chewxy/math32"
)

const (
	sampleRate = 44100
	// gainSlew is the per-frame step toward the target gains, about 10 ms to
	// settle, so position updates at frame rate don't click.
	gainSlew = 1.0 / 441
)

// stream is the io.Reader behind the oto player. It writes interleaved
// stereo float32 frames. The audio goroutine reads while the game loop sets
// target gains, so both sides take mu.
type stream struct {
	mu     sync.Mutex
	target Gains
	gains  Gains

	samples []float32
	pos     int
	phase   float64
}

func newStream(samples []float32) *stream {
	return &stream{samples: samples}
}

func (s *stream) setTarget(g Gains) {
	s.mu.Lock()
	s.target = g
	s.mu.Unlock()
}

func (s *stream) Read(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(buf) / 8
	for i := 0; i < frames; i++ {
		s.gains.Left = approach(s.gains.Left, s.target.Left)
		s.gains.Right = approach(s.gains.Right, s.target.Right)
		v := s.next()
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(v*s.gains.Left))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(v*s.gains.Right))
	}
	clear(buf[frames*8:])
	return len(buf), nil
}

// next returns one mono sample: the loaded sample when there is one,
// otherwise a two-tone drone with a slow swell.
func (s *stream) next() float32 {
	if len(s.samples) > 0 {
		v := s.samples[s.pos]
		s.pos = (s.pos + 1) % len(s.samples)
		return v
	}
	t := s.phase / sampleRate
	s.phase++
	if s.phase >= sampleRate*8 {
		s.phase = 0
	}
	swell := 0.6 + 0.4*math32.Sin(float32(2*math.Pi*0.25*t))
	tone := 0.6*math32.Sin(float32(2*math.Pi*55*t)) + 0.4*math32.Sin(float32(2*math.Pi*82.5*t))
	return 0.5 * swell * tone
}

func approach(cur, target float32) float32 {
	switch {
	case cur < target:
		return min(cur+gainSlew, target)
	case cur > target:
		return max(cur-gainSlew, target)
	}
	return cur
}
