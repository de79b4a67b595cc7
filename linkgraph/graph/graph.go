package graph

import (
	"sort"

	"golang.org/x/xerrors"
)

// PageID identifies a page within a corpus. IDs are compared and ordered
// lexicographically.
type PageID string

// Iterator is implemented by graph objects that can be iterated.
type Iterator interface {
	// Next advances the iterator. If no more items are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with an iterator.
	Close() error
}

// LinkIterator is implemented by objects that can iterate the pages of a
// link graph together with their outgoing links.
type LinkIterator interface {
	Iterator

	// Link returns the currently fetched page and its outlinks.
	Link() *Link
}

// Link describes a page and the set of corpus pages it links to.
type Link struct {
	ID       PageID
	Outlinks []PageID
}

// Graph is an immutable link graph. Every outlink refers to a page of the
// graph and no page links to itself. Pages without outlinks are sinks.
//
// A Graph is safe for concurrent reads.
type Graph struct {
	pages []PageID
	out   map[PageID][]PageID
}

// New validates links and returns a Graph holding a private copy of them.
// Duplicate outlinks are collapsed. A self-link or an outlink to a page that
// is not a key of links results in ErrInvalidCorpus.
func New(links map[PageID][]PageID) (*Graph, error) {
	g := &Graph{
		pages: make([]PageID, 0, len(links)),
		out:   make(map[PageID][]PageID, len(links)),
	}
	for id := range links {
		g.pages = append(g.pages, id)
	}
	sortIDs(g.pages)

	for _, src := range g.pages {
		seen := make(map[PageID]struct{}, len(links[src]))
		outlinks := make([]PageID, 0, len(links[src]))
		for _, dst := range links[src] {
			if dst == src {
				return nil, xerrors.Errorf("page %q links to itself: %w", src, ErrInvalidCorpus)
			}
			if _, known := links[dst]; !known {
				return nil, xerrors.Errorf("page %q links to unknown page %q: %w", src, dst, ErrInvalidCorpus)
			}
			if _, dup := seen[dst]; dup {
				continue
			}
			seen[dst] = struct{}{}
			outlinks = append(outlinks, dst)
		}
		sortIDs(outlinks)
		g.out[src] = outlinks
	}
	return g, nil
}

// Pages returns the sorted list of pages in the graph.
func (g *Graph) Pages() []PageID {
	return append([]PageID(nil), g.pages...)
}

// Len returns the number of pages in the graph.
func (g *Graph) Len() int { return len(g.pages) }

// HasPage returns true if id is a page of the graph.
func (g *Graph) HasPage(id PageID) bool {
	_, ok := g.out[id]
	return ok
}

// Outlinks returns the sorted outlinks of id, or nil if id is unknown.
func (g *Graph) Outlinks(id PageID) []PageID {
	out, ok := g.out[id]
	if !ok {
		return nil
	}
	return append([]PageID{}, out...)
}

// OutDegree returns the number of outlinks of id.
func (g *Graph) OutDegree(id PageID) int { return len(g.out[id]) }

// IsSink returns true if id is a known page without outlinks.
func (g *Graph) IsSink(id PageID) bool {
	out, ok := g.out[id]
	return ok && len(out) == 0
}

// Sinks returns the sorted list of pages without outlinks.
func (g *Graph) Sinks() []PageID {
	var sinks []PageID
	for _, id := range g.pages {
		if len(g.out[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// Edges returns the total number of links in the graph.
func (g *Graph) Edges() int {
	var n int
	for _, out := range g.out {
		n += len(out)
	}
	return n
}

func sortIDs(ids []PageID) {
	sort.Slice(ids, func(l, r int) bool { return ids[l] < ids[r] })
}
