package question

// Difficulty is one of four ordered bands a question is tagged with.
type Difficulty string

const (
	VeryEasy  Difficulty = "very_easy"
	Easy      Difficulty = "easy"
	Moderate  Difficulty = "moderate"
	Difficult Difficulty = "difficult"
)

// levels is ordered easiest to hardest. The order matters: rank and
// adjacency fallback are derived from it.
var levels = []Difficulty{VeryEasy, Easy, Moderate, Difficult}

// anchors maps each band to the numeric value the ability estimator
// compares against. Must increase monotonically with difficulty.
var anchors = map[Difficulty]float64{
	VeryEasy:  0.0,
	Easy:      1.0,
	Moderate:  2.0,
	Difficult: 3.0,
}

// Levels returns all difficulty bands, easiest first.
func Levels() []Difficulty {
	out := make([]Difficulty, len(levels))
	copy(out, levels)
	return out
}

func (d Difficulty) Valid() bool {
	_, ok := anchors[d]
	return ok
}

// Anchor returns the numeric anchor for the band.
func (d Difficulty) Anchor() float64 {
	return anchors[d]
}

func (d Difficulty) rank() int {
	for i, l := range levels {
		if l == d {
			return i
		}
	}
	return -1
}

// Nearest returns all bands ordered by distance from d, d itself first.
// Ties are broken toward the easier band. Used when the exact band has
// no eligible questions left and the picker falls back to a neighbor.
func (d Difficulty) Nearest() []Difficulty {
	r := d.rank()
	out := make([]Difficulty, 0, len(levels))
	for dist := 0; dist < len(levels); dist++ {
		if lo := r - dist; lo >= 0 {
			out = append(out, levels[lo])
		}
		if dist > 0 {
			if hi := r + dist; hi < len(levels) {
				out = append(out, levels[hi])
			}
		}
	}
	return out
}
