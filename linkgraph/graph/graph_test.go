package graph

import (
	"testing"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GraphTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type GraphTestSuite struct{}

func (s *GraphTestSuite) TestNewCopiesAndSortsInput(c *gc.C) {
	links := map[PageID][]PageID{
		"c.html": {},
		"a.html": {"c.html", "b.html", "c.html"},
		"b.html": {"a.html"},
	}
	g, err := New(links)
	c.Assert(err, gc.IsNil)

	c.Assert(g.Pages(), gc.DeepEquals, []PageID{"a.html", "b.html", "c.html"})
	c.Assert(g.Outlinks("a.html"), gc.DeepEquals, []PageID{"b.html", "c.html"}, gc.Commentf("duplicate outlinks should collapse"))
	c.Assert(g.Len(), gc.Equals, 3)
	c.Assert(g.Edges(), gc.Equals, 3)

	// Mutating the input after construction must not leak into the graph.
	links["b.html"] = append(links["b.html"], "c.html")
	c.Assert(g.Outlinks("b.html"), gc.DeepEquals, []PageID{"a.html"})

	// Mutating a returned slice must not leak either.
	out := g.Outlinks("a.html")
	out[0] = "zzz"
	c.Assert(g.Outlinks("a.html"), gc.DeepEquals, []PageID{"b.html", "c.html"})
}

func (s *GraphTestSuite) TestNewRejectsSelfLinks(c *gc.C) {
	_, err := New(map[PageID][]PageID{
		"a": {"a"},
	})
	c.Assert(xerrors.Is(err, ErrInvalidCorpus), gc.Equals, true)
}

func (s *GraphTestSuite) TestNewRejectsUnknownOutlinks(c *gc.C) {
	_, err := New(map[PageID][]PageID{
		"a": {"b"},
	})
	c.Assert(xerrors.Is(err, ErrInvalidCorpus), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `page "a" links to unknown page "b": invalid corpus`)
}

func (s *GraphTestSuite) TestEmptyGraph(c *gc.C) {
	g, err := New(nil)
	c.Assert(err, gc.IsNil)
	c.Assert(g.Len(), gc.Equals, 0)
	c.Assert(g.Pages(), gc.HasLen, 0)
}

func (s *GraphTestSuite) TestSinks(c *gc.C) {
	g := mustGraph(c, map[PageID][]PageID{
		"a": {"b"},
		"b": {},
		"c": {},
	})
	c.Assert(g.Sinks(), gc.DeepEquals, []PageID{"b", "c"})
	c.Assert(g.IsSink("a"), gc.Equals, false)
	c.Assert(g.IsSink("b"), gc.Equals, true)
	c.Assert(g.IsSink("missing"), gc.Equals, false)
	c.Assert(g.HasPage("missing"), gc.Equals, false)
	c.Assert(g.Outlinks("missing"), gc.IsNil)
}

func (s *GraphTestSuite) TestSinkRewriteDoesNotMutateGraph(c *gc.C) {
	g := mustGraph(c, map[PageID][]PageID{
		"a": {"b"},
		"b": {"c"},
		"c": {},
	})
	v := SinkRewrite(g)

	c.Assert(v.Outlinks("c"), gc.DeepEquals, []PageID{"a", "b", "c"})
	c.Assert(v.OutDegree("c"), gc.Equals, 3)
	c.Assert(v.Outlinks("a"), gc.DeepEquals, []PageID{"b"})
	c.Assert(v.OutDegree("a"), gc.Equals, 1)

	c.Assert(g.Outlinks("c"), gc.HasLen, 0)
	c.Assert(g.IsSink("c"), gc.Equals, true)
}

func (s *GraphTestSuite) TestBuildInlinkIndex(c *gc.C) {
	g := mustGraph(c, map[PageID][]PageID{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {"a"},
		"d": {"c"},
	})
	idx := BuildInlinkIndex(g)
	c.Assert(idx.Inlinks("a"), gc.DeepEquals, []PageID{"c"})
	c.Assert(idx.Inlinks("b"), gc.DeepEquals, []PageID{"a"})
	c.Assert(idx.Inlinks("c"), gc.DeepEquals, []PageID{"a", "b", "d"})
	c.Assert(idx.Inlinks("d"), gc.HasLen, 0)
	c.Assert(idx.Len(), gc.Equals, 3)
}

func (s *GraphTestSuite) TestBuildInlinkIndexOverSinkRewrite(c *gc.C) {
	g := mustGraph(c, map[PageID][]PageID{
		"a": {"b"},
		"b": {},
	})
	idx := BuildInlinkIndex(SinkRewrite(g))
	c.Assert(idx.Inlinks("a"), gc.DeepEquals, []PageID{"b"})
	c.Assert(idx.Inlinks("b"), gc.DeepEquals, []PageID{"a", "b"})
}

func mustGraph(c *gc.C, links map[PageID][]PageID) *Graph {
	g, err := New(links)
	c.Assert(err, gc.IsNil)
	return g
}
