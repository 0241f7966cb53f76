// internal/game/source.go
//
// Random sources for target draws: crypto-backed, seeded PCG, and a
// mutex-guarded wrapper for sources shared across sessions.

package game

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source yields uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a deterministic source; the same seed always
// produces the same sequence of targets.
func NewSeededSource(seed uint64) Source {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewCryptoSource returns a source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// NewLockedSource makes src safe for concurrent use by several sessions.
func NewLockedSource(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
