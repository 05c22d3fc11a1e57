package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// loadWav reads a PCM WAV file and mixes it down to mono samples in [-1, 1].
// 16-bit integer and 32-bit float data are supported.
func loadWav(path string) ([]float32, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read wav: %w", err)
	}
	return decodeWav(data)
}

func decodeWav(data []byte) ([]float32, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a WAV file")
	}

	var channels, bits, rate int
	var pcm []byte
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := data[off+8:]
		if size > len(body) {
			size = len(body)
		}
		body = body[:size]
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("short fmt chunk")
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			rate = int(binary.LittleEndian.Uint32(body[4:8]))
			bits = int(binary.LittleEndian.Uint16(body[14:16]))
		case "data":
			pcm = body
		}
		off += 8 + size + size%2
	}
	if channels == 0 || pcm == nil {
		return nil, 0, fmt.Errorf("missing fmt or data chunk")
	}

	width := bits / 8
	if bits != 16 && bits != 32 {
		return nil, 0, fmt.Errorf("unsupported bits per sample: %d", bits)
	}
	n := len(pcm) / (width * channels)
	out := make([]float32, n)
	for i := range out {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			at := (i*channels + ch) * width
			if bits == 16 {
				sum += float32(int16(binary.LittleEndian.Uint16(pcm[at:]))) / 32768
			} else {
				sum += math.Float32frombits(binary.LittleEndian.Uint32(pcm[at:]))
			}
		}
		out[i] = sum / float32(channels)
	}
	return out, rate, nil
}
