package orbs

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Path is the ordered waypoint list. Base indices come first, then the
// additional sequence. Indices never change after construction.
type Path struct {
	Base       []rl.Vector3
	Additional []rl.Vector3
}

func (p Path) Len() int { return len(p.Base) + len(p.Additional) }

func (p Path) At(i int) (rl.Vector3, bool) {
	switch {
	case i < 0:
		return rl.Vector3{}, false
	case i < len(p.Base):
		return p.Base[i], true
	case i < p.Len():
		return p.Additional[i-len(p.Base)], true
	}
	return rl.Vector3{}, false
}

func (p Path) IsAdditional(i int) bool {
	return i >= len(p.Base) && i < p.Len()
}

// Reserved is the first additional index, which never gets a marker, or -1.
func (p Path) Reserved() int {
	if len(p.Additional) == 0 {
		return -1
	}
	return len(p.Base)
}

// LastIndex is the last base index when an additional sequence exists,
// otherwise the last index overall.
func (p Path) LastIndex() int {
	if len(p.Additional) > 0 {
		return len(p.Base) - 1
	}
	return p.Len() - 1
}

// Closest returns the index nearest to pos, preferring the lower index on
// ties, or -1 for an empty path.
func (p Path) Closest(pos rl.Vector3) int {
	best, bestDist := -1, float32(0)
	for i := 0; i < p.Len(); i++ {
		w, _ := p.At(i)
		d := rl.Vector3DistanceSqr(pos, w)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
