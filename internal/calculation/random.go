package calculation

import (
	"math/rand"
	"time"
)

// NormalSource yields standard normal draws for one simulation path.
// *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// SourceFactory returns an independent NormalSource for the given path index.
// Paths must not share generator state, otherwise parallel simulation would
// introduce cross-path correlation artifacts.
type SourceFactory func(path int) NormalSource

// seedFunc returns a pseudo-random seed (override for deterministic Monte
// Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed source. Pass nil to restore the default.
func SetSeedFunc(f func() int64) {
	if f == nil {
		seedFunc = func() int64 { return time.Now().UnixNano() }
		return
	}
	seedFunc = f
}

// seededSources derives one generator per path from a base seed.
func seededSources(seed int64) SourceFactory {
	return func(path int) NormalSource {
		return rand.New(rand.NewSource(seed + int64(path)))
	}
}
