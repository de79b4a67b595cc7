package pagerank_test

import (
	"math"
	"math/rand"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/graphprocessing/pagerank/pageranktest"
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SamplerTestSuite))

type SamplerTestSuite struct {
	pageranktest.SuiteBase
}

func (s *SamplerTestSuite) SetUpTest(c *gc.C) {
	sampler, err := pagerank.NewSampler(pagerank.Config{
		SampleCount: 100000,
		Seed:        42,
	})
	c.Assert(err, gc.IsNil)
	s.SetEstimator(sampler, 0.02)
}

func (s *SamplerTestSuite) TestDefaults(c *gc.C) {
	sampler, err := pagerank.NewSampler(pagerank.Config{Seed: 1})
	c.Assert(err, gc.IsNil)
	c.Assert(sampler.SampleCount(), gc.Equals, 10000)
	c.Assert(sampler.DampingFactor(), gc.Equals, 0.85)

	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())
	ranks, err := sampler.Rank(g)
	c.Assert(err, gc.IsNil)
	assertCountsPartition(c, ranks, 10000)
}

func (s *SamplerTestSuite) TestCountsPartitionSampleCount(c *gc.C) {
	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())
	for _, n := range []int{1, 7, 1000} {
		ranks, err := pagerank.SampleRank(g, pagerank.Config{SampleCount: n, Seed: int64(n)})
		c.Assert(err, gc.IsNil)
		assertCountsPartition(c, ranks, n)
	}
}

func (s *SamplerTestSuite) TestReproducibleWithSeed(c *gc.C) {
	g := pageranktest.MustGraph(c, pageranktest.SampleCorpus())

	first, err := pagerank.SampleRank(g, pagerank.Config{SampleCount: 5000, Rand: rand.New(rand.NewSource(7))})
	c.Assert(err, gc.IsNil)
	second, err := pagerank.SampleRank(g, pagerank.Config{SampleCount: 5000, Rand: rand.New(rand.NewSource(7))})
	c.Assert(err, gc.IsNil)
	c.Assert(first, gc.DeepEquals, second)
}

func (s *SamplerTestSuite) TestSinglePageIsExact(c *gc.C) {
	g := pageranktest.MustGraph(c, map[graph.PageID][]graph.PageID{"A": {}})
	ranks, err := pagerank.SampleRank(g, pagerank.Config{SampleCount: 10, Seed: 3})
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, pagerank.Ranks{"A": 1})
}

func (s *SamplerTestSuite) TestInvalidConfig(c *gc.C) {
	cfgs := []pagerank.Config{
		{DampingFactor: -0.5},
		{DampingFactor: 1},
		{DampingFactor: 1.5},
		{SampleCount: -1},
		{ConvergenceThreshold: 2},
		{MaxPasses: -3},
	}
	for i, cfg := range cfgs {
		_, err := pagerank.NewSampler(cfg)
		c.Assert(xerrors.Is(err, pagerank.ErrInvalidParameter), gc.Equals, true, gc.Commentf("config %d", i))
	}
}

func (s *SamplerTestSuite) TestInvalidConfigReportsAllProblems(c *gc.C) {
	_, err := pagerank.NewSampler(pagerank.Config{DampingFactor: 2, SampleCount: -1})
	c.Assert(err, gc.ErrorMatches, `(?s).*damping factor.*sample count.*`)
}

// assertCountsPartition checks that ranks are visit frequencies of exactly
// n draws.
func assertCountsPartition(c *gc.C, ranks pagerank.Ranks, n int) {
	var total int
	for p, rank := range ranks {
		count := rank * float64(n)
		rounded := math.Round(count)
		c.Assert(math.Abs(count-rounded) < 1e-6, gc.Equals, true, gc.Commentf("page %q: %v is not a visit frequency", p, rank))
		total += int(rounded)
	}
	c.Assert(total, gc.Equals, n)
	c.Assert(math.Abs(ranks.Sum()-1) <= 1e-12, gc.Equals, true, gc.Commentf("ranks sum to %v", ranks.Sum()))
}
