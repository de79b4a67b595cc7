package pageranktest

import (
	"math"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of tests that can be executed against
// any type that implements pagerank.Estimator.
type SuiteBase struct {
	e   pagerank.Estimator
	tol float64
}

// SetEstimator configures the test-suite to run all tests against e. Rank
// values are compared using the provided absolute tolerance.
func (s *SuiteBase) SetEstimator(e pagerank.Estimator, tolerance float64) {
	s.e = e
	s.tol = tolerance
}

// TestSinglePage verifies that the only page of a corpus gets all the rank.
func (s *SuiteBase) TestSinglePage(c *gc.C) {
	g := MustGraph(c, map[graph.PageID][]graph.PageID{"A": {}})

	ranks, err := s.e.Rank(g)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, 1)
	s.assertClose(c, ranks["A"], 1.0, "A")
}

// TestMutuallyLinkedPages verifies that two pages linking to each other
// share the rank evenly.
func (s *SuiteBase) TestMutuallyLinkedPages(c *gc.C) {
	g := MustGraph(c, map[graph.PageID][]graph.PageID{
		"A": {"B"},
		"B": {"A"},
	})

	ranks, err := s.e.Rank(g)
	c.Assert(err, gc.IsNil)
	s.assertClose(c, ranks["A"], 0.5, "A")
	s.assertClose(c, ranks["B"], 0.5, "B")
}

// TestRanksFormDistribution verifies that every page is ranked, that every
// rank lies in [0, 1] and that the ranks add up to 1.
func (s *SuiteBase) TestRanksFormDistribution(c *gc.C) {
	g := MustGraph(c, SampleCorpus())

	ranks, err := s.e.Rank(g)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, g.Len())
	for _, p := range g.Pages() {
		rank, found := ranks[p]
		c.Assert(found, gc.Equals, true, gc.Commentf("page %q was not ranked", p))
		c.Assert(rank >= 0 && rank <= 1, gc.Equals, true, gc.Commentf("rank %v of page %q outside [0, 1]", rank, p))
	}
	c.Assert(math.Abs(ranks.Sum()-1) <= 1e-3, gc.Equals, true, gc.Commentf("ranks sum to %v", ranks.Sum()))
}

// TestEmptyCorpus verifies that ranking an empty graph fails with
// ErrEmptyCorpus.
func (s *SuiteBase) TestEmptyCorpus(c *gc.C) {
	g := MustGraph(c, nil)

	_, err := s.e.Rank(g)
	c.Assert(xerrors.Is(err, pagerank.ErrEmptyCorpus), gc.Equals, true)
}

// TestGraphIsNotModified verifies that ranking leaves sinks untouched.
func (s *SuiteBase) TestGraphIsNotModified(c *gc.C) {
	g := MustGraph(c, map[graph.PageID][]graph.PageID{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	})

	_, err := s.e.Rank(g)
	c.Assert(err, gc.IsNil)
	c.Assert(g.Sinks(), gc.DeepEquals, []graph.PageID{"C"})
	c.Assert(g.Outlinks("C"), gc.HasLen, 0)
	c.Assert(g.Edges(), gc.Equals, 2)
}

func (s *SuiteBase) assertClose(c *gc.C, got, exp float64, page graph.PageID) {
	c.Assert(math.Abs(got-exp) <= s.tol, gc.Equals, true,
		gc.Commentf("%s: rank of %q is %v; expected %v ± %v", s.e.Name(), page, got, exp, s.tol))
}

// SampleCorpus returns a small corpus with a mix of hubs, chains and a sink.
func SampleCorpus() map[graph.PageID][]graph.PageID {
	return map[graph.PageID][]graph.PageID{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html"},
		"5.html": {"1.html", "4.html"},
		"6.html": {},
	}
}

// MustGraph builds a graph from links and fails the test on error.
func MustGraph(c *gc.C, links map[graph.PageID][]graph.PageID) *graph.Graph {
	g, err := graph.New(links)
	c.Assert(err, gc.IsNil)
	return g
}
