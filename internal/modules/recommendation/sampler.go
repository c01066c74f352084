package recommendation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Sampler picks k distinct indices out of [0, n) in no particular order.
// k is never larger than n.
type Sampler interface {
	Sample(n, k int) []int
}

type randSampler struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSampler returns a Sampler backed by a PCG source. A zero seed draws one
// from the clock.
func NewSampler(seed uint64) Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randSampler{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *randSampler) Sample(n, k int) []int {
	if k <= 0 || n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Partial Fisher-Yates: only the first k slots are shuffled.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	k = min(k, n)
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
