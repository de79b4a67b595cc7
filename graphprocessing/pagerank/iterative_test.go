package pagerank_test

import (
	"math"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/graphprocessing/pagerank/pageranktest"
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(IterativeTestSuite))

type IterativeTestSuite struct {
	pageranktest.SuiteBase
}

func (s *IterativeTestSuite) SetUpTest(c *gc.C) {
	it, err := pagerank.NewIterative(pagerank.Config{})
	c.Assert(err, gc.IsNil)
	s.SetEstimator(it, 1e-3)
}

// TestLinearChain compares the result for A -> B -> C against values
// obtained by applying the update rule by hand until convergence. The sink
// C is rewritten to link to A, B and C.
func (s *IterativeTestSuite) TestLinearChain(c *gc.C) {
	g := pageranktest.MustGraph(c, map[graph.PageID][]graph.PageID{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	})

	it, err := pagerank.NewIterative(pagerank.Config{DampingFactor: 0.85})
	c.Assert(err, gc.IsNil)
	ranks, err := it.Rank(g)
	c.Assert(err, gc.IsNil)

	exp := pagerank.Ranks{
		"A": 0.18429770020469227,
		"B": 0.3411991903034627,
		"C": 0.4745031094918449,
	}
	for p, rank := range exp {
		c.Assert(math.Abs(ranks[p]-rank) <= 1e-9, gc.Equals, true, gc.Commentf("page %q: got %v; expected %v", p, ranks[p], rank))
	}
	c.Assert(it.Passes(), gc.Equals, 10)
}

func (s *IterativeTestSuite) TestHooksObservePasses(c *gc.C) {
	var (
		pre    []int
		post   []int
		deltas []float64
	)
	it, err := pagerank.NewIterative(pagerank.Config{
		Hooks: pagerank.Hooks{
			PrePass: func(pass int) { pre = append(pre, pass) },
			PostPass: func(pass int, maxDelta float64) {
				post = append(post, pass)
				deltas = append(deltas, maxDelta)
			},
		},
	})
	c.Assert(err, gc.IsNil)

	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())
	_, err = it.Rank(g)
	c.Assert(err, gc.IsNil)

	c.Assert(pre, gc.HasLen, it.Passes())
	c.Assert(post, gc.DeepEquals, pre)
	for i, pass := range pre {
		c.Assert(pass, gc.Equals, i+1)
	}
	c.Assert(deltas[len(deltas)-1] <= 0.001, gc.Equals, true)
	for _, delta := range deltas[:len(deltas)-1] {
		c.Assert(delta > 0.001, gc.Equals, true, gc.Commentf("estimator kept running after convergence"))
	}
}

// TestDecreasingRanksAreChecked ensures convergence is decided on the
// absolute change: pages whose rank only decreases must still settle.
func (s *IterativeTestSuite) TestDecreasingRanksAreChecked(c *gc.C) {
	var deltas []float64
	it, err := pagerank.NewIterative(pagerank.Config{
		Hooks: pagerank.Hooks{
			PostPass: func(_ int, maxDelta float64) { deltas = append(deltas, maxDelta) },
		},
	})
	c.Assert(err, gc.IsNil)

	// Every page but "hub" loses rank in the first pass.
	g := pageranktest.MustGraph(c, map[graph.PageID][]graph.PageID{
		"a":   {"hub"},
		"b":   {"hub"},
		"c":   {"hub"},
		"hub": {"a"},
	})
	ranks, err := it.Rank(g)
	c.Assert(err, gc.IsNil)
	c.Assert(it.Passes() > 1, gc.Equals, true)
	c.Assert(deltas[len(deltas)-1] <= 0.001, gc.Equals, true)
	c.Assert(math.Abs(ranks.Sum()-1) <= 1e-3, gc.Equals, true)
}

func (s *IterativeTestSuite) TestMaxPasses(c *gc.C) {
	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())

	_, err := pagerank.IterateRank(g, pagerank.Config{MaxPasses: 1, ConvergenceThreshold: 1e-12})
	c.Assert(xerrors.Is(err, pagerank.ErrNotConverged), gc.Equals, true)

	ranks, err := pagerank.IterateRank(g, pagerank.Config{MaxPasses: 1000})
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, g.Len())
}

func (s *IterativeTestSuite) TestInvalidDamping(c *gc.C) {
	_, err := pagerank.NewIterative(pagerank.Config{DampingFactor: 1})
	c.Assert(xerrors.Is(err, pagerank.ErrInvalidParameter), gc.Equals, true)
}

// TestAgreesWithSampling verifies that both estimators approximate the same
// stationary distribution.
func (s *IterativeTestSuite) TestAgreesWithSampling(c *gc.C) {
	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())

	iterated, err := pagerank.IterateRank(g, pagerank.Config{})
	c.Assert(err, gc.IsNil)
	sampled, err := pagerank.SampleRank(g, pagerank.Config{SampleCount: 100000, Seed: 1234})
	c.Assert(err, gc.IsNil)

	for _, p := range g.Pages() {
		c.Assert(math.Abs(iterated[p]-sampled[p]) <= 0.05, gc.Equals, true,
			gc.Commentf("page %q: iteration %v, sampling %v", p, iterated[p], sampled[p]))
	}
}
