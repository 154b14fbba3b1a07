package picker

import (
	"math/rand"
	"sync"
)

type (
	// Picker picks an item at random, proportionally to the item weights.
	Picker interface {
		Next() interface{}
	}

	Choice struct {
		Item   interface{}
		Weight int
	}

	weightedPicker struct {
		mu      sync.Mutex
		rand    *rand.Rand
		choices []*Choice
		totals  []int
		total   int
	}
)

func New(choices []*Choice) Picker {
	totals := make([]int, 0, len(choices))
	filtered := make([]*Choice, 0, len(choices))
	total := 0
	for _, choice := range choices {
		if choice.Weight <= 0 {
			continue
		}

		total += choice.Weight
		totals = append(totals, total)
		filtered = append(filtered, choice)
	}

	return &weightedPicker{
		rand:    rand.New(rand.NewSource(rand.Int63())), // #nosec G404
		choices: filtered,
		totals:  totals,
		total:   total,
	}
}

// Next returns nil if there is no choice with a positive weight.
func (p *weightedPicker) Next() interface{} {
	if p.total == 0 {
		return nil
	}

	p.mu.Lock()
	r := p.rand.Intn(p.total)
	p.mu.Unlock()

	// Binary search for the first running total greater than r.
	lo, hi := 0, len(p.totals)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if p.totals[mid] > r {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return p.choices[lo].Item
}
