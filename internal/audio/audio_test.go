package audio

import (
	"encoding/binary"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/config"
)

var (
	origin = rl.Vector3{}
	right  = rl.Vector3{X: 1}
)

func TestSpatializePansTowardSource(t *testing.T) {
	g := Spatialize(origin, right, rl.Vector3{X: 1}, 2, 12)
	if g.Right != 1 {
		t.Errorf("expected full right gain inside ref distance, got %v", g.Right)
	}
	if g.Left >= g.Right {
		t.Errorf("source on the right should be quieter on the left: %+v", g)
	}

	g = Spatialize(origin, right, rl.Vector3{X: -1}, 2, 12)
	if g.Right >= g.Left {
		t.Errorf("source on the left should be quieter on the right: %+v", g)
	}

	g = Spatialize(origin, right, rl.Vector3{Z: 1}, 2, 12)
	if g.Left != g.Right {
		t.Errorf("source straight ahead should be centered: %+v", g)
	}
}

func TestSpatializeFallsOff(t *testing.T) {
	near := Spatialize(origin, right, rl.Vector3{Z: 2}, 2, 12)
	mid := Spatialize(origin, right, rl.Vector3{Z: 4}, 2, 12)
	if mid.Left != 0.25 {
		t.Errorf("expected inverse square at twice ref, got %v", mid.Left)
	}
	if mid.Left >= near.Left {
		t.Error("farther source should be quieter")
	}
	fading := Spatialize(origin, right, rl.Vector3{Z: 11}, 2, 12)
	if fading.Left <= 0 || fading.Left >= (2.0/11)*(2.0/11) {
		t.Errorf("expected fade near max distance, got %v", fading.Left)
	}
	if g := Spatialize(origin, right, rl.Vector3{Z: 12}, 2, 12); g != (Gains{}) {
		t.Errorf("expected silence at max distance, got %+v", g)
	}
}

func TestSpatializeCoincident(t *testing.T) {
	g := Spatialize(origin, right, origin, 2, 12)
	if g.Left != 1 || g.Right != 1 {
		t.Errorf("expected full centered gain, got %+v", g)
	}
}

func frame(buf []byte, i int) (l, r float32) {
	l = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
	r = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
	return
}

func TestStreamSilentUntilTargeted(t *testing.T) {
	s := newStream([]float32{1})
	buf := make([]byte, 8*64)
	s.Read(buf)
	for i := 0; i < 64; i++ {
		if l, r := frame(buf, i); l != 0 || r != 0 {
			t.Fatalf("frame %d not silent: %v %v", i, l, r)
		}
	}
}

func TestStreamRampsGains(t *testing.T) {
	s := newStream([]float32{1})
	s.setTarget(Gains{Left: 1, Right: 0.5})
	buf := make([]byte, 8*1000)
	n, err := s.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	l0, _ := frame(buf, 0)
	if l0 <= 0 || l0 > 0.01 {
		t.Errorf("first frame should start the ramp, got %v", l0)
	}
	l, r := frame(buf, 999)
	if l != 1 || r != 0.5 {
		t.Errorf("expected settled gains, got %v %v", l, r)
	}
}

func TestStreamDroneIsBounded(t *testing.T) {
	s := newStream(nil)
	s.setTarget(Gains{Left: 1, Right: 1})
	buf := make([]byte, 8*4410)
	s.Read(buf)
	var peak float32
	for i := 0; i < 4410; i++ {
		l, _ := frame(buf, i)
		peak = max(peak, l, -l)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("drone peak %v out of range", peak)
	}
}

func TestDisabledPresenceIsSilentNoop(t *testing.T) {
	p, err := Open(config.AudioTuning{Disabled: true})
	if err != nil {
		t.Fatal(err)
	}
	p.Update(true, origin, right, rl.Vector3{X: 1})
	if err := p.Close(); err != nil {
		t.Error(err)
	}
}

func wavBytes(samples []int16) []byte {
	b := []byte("RIFF\x00\x00\x00\x00WAVE")
	fmtChunk := make([]byte, 24)
	copy(fmtChunk, "fmt ")
	binary.LittleEndian.PutUint32(fmtChunk[4:], 16)
	binary.LittleEndian.PutUint16(fmtChunk[8:], 1)
	binary.LittleEndian.PutUint16(fmtChunk[10:], 1)
	binary.LittleEndian.PutUint32(fmtChunk[12:], sampleRate)
	binary.LittleEndian.PutUint32(fmtChunk[16:], sampleRate*2)
	binary.LittleEndian.PutUint16(fmtChunk[20:], 2)
	binary.LittleEndian.PutUint16(fmtChunk[22:], 16)
	b = append(b, fmtChunk...)
	// An unrelated chunk before data must be skipped.
	b = append(b, []byte("LIST\x02\x00\x00\x00ab")...)
	data := make([]byte, 8+2*len(samples))
	copy(data, "data")
	binary.LittleEndian.PutUint32(data[4:], uint32(2*len(samples)))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[8+2*i:], uint16(s))
	}
	return append(b, data...)
}

func TestDecodeWav(t *testing.T) {
	got, rate, err := decodeWav(wavBytes([]int16{0, 16384, -32768}))
	if err != nil {
		t.Fatalf("decodeWav: %v", err)
	}
	if rate != sampleRate || len(got) != 3 {
		t.Fatalf("rate %d len %d", rate, len(got))
	}
	if got[1] != 0.5 || got[2] != -1 {
		t.Errorf("unexpected samples %v", got)
	}
	if _, _, err := decodeWav([]byte("nope")); err == nil {
		t.Error("expected error for non-WAV data")
	}
}
