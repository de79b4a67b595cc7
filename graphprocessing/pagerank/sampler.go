package pagerank

import (
	"math/rand"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Sampler estimates PageRank by simulating a random surfer: starting from a
// random page it draws SampleCount pages according to the transition model
// and reports how often each page was visited.
//
// A Sampler owns its random source and is not safe for concurrent use.
type Sampler struct {
	cfg Config
}

// NewSampler returns a new Sampler instance using the provided config
// options.
func NewSampler(cfg Config) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sampling estimator config validation failed: %w", err)
	}
	return &Sampler{cfg: cfg}, nil
}

// SampleRank is a convenience wrapper that creates a Sampler from cfg and
// runs it once against g.
func SampleRank(g *graph.Graph, cfg Config) (Ranks, error) {
	s, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	return s.Rank(g)
}

// Name implements Estimator.
func (s *Sampler) Name() string { return "sampling" }

// SampleCount returns the number of draws performed by each call to Rank.
func (s *Sampler) SampleCount() int { return s.cfg.SampleCount }

// DampingFactor returns the damping factor used for the random walk.
func (s *Sampler) DampingFactor() float64 { return s.cfg.DampingFactor }

// Rank implements Estimator. Every draw increments exactly one counter, so
// the returned ranks add up to 1.
func (s *Sampler) Rank(g *graph.Graph) (Ranks, error) {
	if g.Len() == 0 {
		return nil, xerrors.Errorf("sampling estimator: %w", ErrEmptyCorpus)
	}

	var (
		pages    = g.Pages()
		n        = s.cfg.SampleCount
		rng      = s.cfg.Rand
		counts   = make(map[graph.PageID]int, len(pages))
		logEvery = n / 10
		cur      = pages[rng.Intn(len(pages))]
	)
	if logEvery == 0 {
		logEvery = 1
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"pages":   len(pages),
		"samples": n,
		"damping": s.cfg.DampingFactor,
		"start":   cur,
	}).Debug("starting random walk")

	for i := 1; i <= n; i++ {
		dist, err := Transition(g, cur, s.cfg.DampingFactor)
		if err != nil {
			return nil, xerrors.Errorf("sampling estimator: draw %d: %w", i, err)
		}
		cur = weightedChoice(rng, pages, dist)
		counts[cur]++

		if i%logEvery == 0 {
			s.cfg.Logger.WithField("draws", i).Debug("random walk progress")
		}
	}

	ranks := make(Ranks, len(pages))
	for _, p := range pages {
		ranks[p] = float64(counts[p]) / float64(n)
	}
	return ranks, nil
}

// weightedChoice picks one of pages with probability proportional to its
// weight in dist.
func weightedChoice(rng *rand.Rand, pages []graph.PageID, dist Distribution) graph.PageID {
	var total float64
	for _, p := range pages {
		total += dist[p]
	}

	var (
		target = rng.Float64() * total
		cum    float64
		last   graph.PageID
	)
	for _, p := range pages {
		w := dist[p]
		if w <= 0 {
			continue
		}
		cum += w
		last = p
		if target < cum {
			return p
		}
	}
	// Rounding can leave target just above the final cumulative weight.
	return last
}
