package pagerank

import "github.com/MrDiipo/pagerank/linkgraph/graph"

// Estimator is implemented by types that can compute the rank of every page
// in a link graph.
type Estimator interface {
	// Name returns a short identifier for the estimator.
	Name() string

	// Rank computes a rank mapping for g.
	Rank(g *graph.Graph) (Ranks, error)
}

var (
	_ Estimator = (*Sampler)(nil)
	_ Estimator = (*Iterative)(nil)
)
