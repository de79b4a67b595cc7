package pagerank

import (
	"math"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
)

// distributionTolerance is the maximum deviation from 1 tolerated for the
// sum of a transition distribution.
const distributionTolerance = 1e-9

// Transition returns the probability distribution over the page a random
// surfer visits next when currently at page.
//
// With probability damping the surfer follows one of the outlinks of page,
// chosen uniformly; otherwise it jumps to any page of the graph. A sink is
// treated as linking to every page, so its distribution is uniform.
func Transition(g *graph.Graph, page graph.PageID, damping float64) (Distribution, error) {
	if damping < 0 || damping > 1 {
		return nil, xerrors.Errorf("transition: damping factor %v outside [0, 1]: %w", damping, ErrInvalidParameter)
	}
	if g.Len() == 0 {
		return nil, xerrors.Errorf("transition: %w", ErrEmptyCorpus)
	}
	if !g.HasPage(page) {
		return nil, xerrors.Errorf("transition from %q: %w", page, ErrInvalidPage)
	}

	var (
		pages    = g.Pages()
		outlinks = g.Outlinks(page)
		n        = float64(len(pages))
		dist     = make(Distribution, len(pages))
	)

	if len(outlinks) == 0 {
		for _, p := range pages {
			dist[p] = 1 / n
		}
	} else {
		base := (1 - damping) / n
		for _, p := range pages {
			dist[p] = base
		}
		share := damping / float64(len(outlinks))
		for _, p := range outlinks {
			dist[p] += share
		}
	}

	if sum := dist.Sum(); math.Abs(sum-1) > distributionTolerance {
		return nil, xerrors.Errorf("transition from %q sums to %v: %w", page, sum, ErrBrokenDistribution)
	}
	return dist, nil
}
