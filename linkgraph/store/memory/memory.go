package memory

import (
	"sync"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"golang.org/x/xerrors"
)

var (
	// ErrUnknownEdgeLinks is returned by UpsertEdge when the source and/or
	// destination of the edge has not been registered.
	ErrUnknownEdgeLinks = xerrors.New("unknown source and/or destination for edge")

	// ErrSelfLink is returned by UpsertEdge when source and destination match.
	ErrSelfLink = xerrors.New("page cannot link to itself")
)

type edgeSet map[graph.PageID]struct{}

// Store is an in-memory link store that is used for assembling a link
// graph. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	links map[graph.PageID]edgeSet
}

// NewStore creates a new, empty in-memory link store.
func NewStore() *Store {
	return &Store{
		links: make(map[graph.PageID]edgeSet),
	}
}

// UpsertLink registers a page. Registering an existing page is a no-op.
func (s *Store) UpsertLink(id graph.PageID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.links[id] == nil {
		s.links[id] = make(edgeSet)
	}
}

// HasLink returns true if id has been registered.
func (s *Store) HasLink(id graph.PageID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.links[id]
	return exists
}

// UpsertEdge records a link from src to dst. Both pages must have been
// registered beforehand. Recording the same edge twice is a no-op.
func (s *Store) UpsertEdge(src, dst graph.PageID) error {
	if src == dst {
		return xerrors.Errorf("upsert edge %q: %w", src, ErrSelfLink)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	srcEdges, srcExists := s.links[src]
	_, dstExists := s.links[dst]
	if !srcExists || !dstExists {
		return xerrors.Errorf("upsert edge %q -> %q: %w", src, dst, ErrUnknownEdgeLinks)
	}
	srcEdges[dst] = struct{}{}
	return nil
}

// Links returns an iterator over a snapshot of the registered pages and
// their outlinks.
func (s *Store) Links() graph.LinkIterator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*graph.Link, 0, len(s.links))
	for id, edges := range s.links {
		link := &graph.Link{ID: id, Outlinks: make([]graph.PageID, 0, len(edges))}
		for dst := range edges {
			link.Outlinks = append(link.Outlinks, dst)
		}
		list = append(list, link)
	}
	return &linkIterator{links: list}
}

// Graph validates the stored links and returns them as an immutable graph.
func (s *Store) Graph() (*graph.Graph, error) {
	adjacency := make(map[graph.PageID][]graph.PageID)
	it := s.Links()
	for it.Next() {
		link := it.Link()
		adjacency[link.ID] = link.Outlinks
	}
	if err := it.Error(); err != nil {
		return nil, xerrors.Errorf("iterate links: %w", err)
	}
	if err := it.Close(); err != nil {
		return nil, xerrors.Errorf("iterate links: %w", err)
	}
	return graph.New(adjacency)
}
