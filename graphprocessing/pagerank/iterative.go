package pagerank

import (
	"math"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Iterative computes PageRank by repeatedly applying the PageRank update
// equation to every page until the ranks stop changing.
//
// Sinks are treated as linking to every page, themselves included. This is
// done through a private view so the graph passed to Rank is never changed.
//
// An Iterative instance is not safe for concurrent use.
type Iterative struct {
	cfg    Config
	passes int
}

// NewIterative returns a new Iterative instance using the provided config
// options.
func NewIterative(cfg Config) (*Iterative, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("iterative estimator config validation failed: %w", err)
	}
	return &Iterative{cfg: cfg}, nil
}

// IterateRank is a convenience wrapper that creates an Iterative estimator
// from cfg and runs it once against g.
func IterateRank(g *graph.Graph, cfg Config) (Ranks, error) {
	it, err := NewIterative(cfg)
	if err != nil {
		return nil, err
	}
	return it.Rank(g)
}

// Name implements Estimator.
func (it *Iterative) Name() string { return "iteration" }

// Passes returns the number of passes executed by the last call to Rank.
func (it *Iterative) Passes() int { return it.passes }

// Rank implements Estimator.
func (it *Iterative) Rank(g *graph.Graph) (Ranks, error) {
	it.passes = 0
	if g.Len() == 0 {
		return nil, xerrors.Errorf("iterative estimator: %w", ErrEmptyCorpus)
	}

	var (
		view      = graph.SinkRewrite(g)
		inlinks   = graph.BuildInlinkIndex(view)
		pages     = view.Pages()
		n         = float64(len(pages))
		damping   = it.cfg.DampingFactor
		base      = (1 - damping) / n
		outDegree = make(map[graph.PageID]float64, len(pages))
		rank      = make(Ranks, len(pages))
	)
	for _, p := range pages {
		outDegree[p] = float64(view.OutDegree(p))
		rank[p] = 1 / n
	}

	if logger := it.cfg.Logger; logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		for _, p := range pages {
			logger.WithFields(logrus.Fields{
				"page":     p,
				"outlinks": view.Outlinks(p),
				"inlinks":  inlinks.Inlinks(p),
			}).Debug("prepared page")
		}
	}

	for pass := 1; ; pass++ {
		if it.cfg.MaxPasses > 0 && pass > it.cfg.MaxPasses {
			return nil, xerrors.Errorf("iterative estimator: gave up after %d passes: %w", it.cfg.MaxPasses, ErrNotConverged)
		}
		it.cfg.Hooks.PrePass(pass)

		// Every new rank is computed from the previous snapshot only.
		next := make(Ranks, len(pages))
		for _, p := range pages {
			var sum float64
			for _, q := range inlinks.Inlinks(p) {
				sum += rank[q] / outDegree[q]
			}
			next[p] = base + damping*sum
		}

		var maxDelta float64
		for _, p := range pages {
			if delta := math.Abs(rank[p] - next[p]); delta > maxDelta {
				maxDelta = delta
			}
		}
		rank = next
		it.passes = pass

		it.cfg.Hooks.PostPass(pass, maxDelta)
		it.cfg.Logger.WithFields(logrus.Fields{
			"pass":      pass,
			"max_delta": maxDelta,
		}).Debug("completed pass")

		if maxDelta <= it.cfg.ConvergenceThreshold {
			return rank, nil
		}
	}
}
