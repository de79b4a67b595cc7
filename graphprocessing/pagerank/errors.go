package pagerank

import (
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
)

var (
	// ErrInvalidParameter is returned when a damping factor, sample count or
	// convergence setting is out of range.
	ErrInvalidParameter = xerrors.New("invalid parameter")

	// ErrInvalidPage is returned by Transition when the page is not part of
	// the graph.
	ErrInvalidPage = xerrors.New("page is not part of the graph")

	// ErrEmptyCorpus is returned by the estimators when the graph has no
	// pages.
	ErrEmptyCorpus = graph.ErrEmptyCorpus

	// ErrBrokenDistribution is returned by Transition if the computed
	// probabilities do not add up to 1.
	ErrBrokenDistribution = xerrors.New("transition probabilities do not sum to 1")

	// ErrNotConverged is returned by the iterative estimator when MaxPasses
	// is set and the ranks did not converge within that many passes.
	ErrNotConverged = xerrors.New("ranks did not converge")
)
