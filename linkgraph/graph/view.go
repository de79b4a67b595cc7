package graph

// View is a read-only adjacency view over a set of pages.
type View interface {
	// Pages returns the sorted list of pages.
	Pages() []PageID

	// Outlinks returns the sorted outlinks of a page.
	Outlinks(id PageID) []PageID

	// OutDegree returns the number of outlinks of a page.
	OutDegree(id PageID) int
}

var _ View = (*Graph)(nil)

// sinkRewrite overrides the outlinks of sink pages so that they link to
// every page of the graph, including themselves. The wrapped graph is
// never modified.
type sinkRewrite struct {
	g *Graph
}

// SinkRewrite returns a View of g in which every sink links to all pages,
// itself included. Non-sink pages keep their outlinks.
func SinkRewrite(g *Graph) View {
	return sinkRewrite{g: g}
}

func (v sinkRewrite) Pages() []PageID { return v.g.Pages() }

func (v sinkRewrite) Outlinks(id PageID) []PageID {
	if v.g.IsSink(id) {
		return v.g.Pages()
	}
	return v.g.Outlinks(id)
}

func (v sinkRewrite) OutDegree(id PageID) int {
	if v.g.IsSink(id) {
		return v.g.Len()
	}
	return v.g.OutDegree(id)
}

// InlinkIndex maps each page to the sorted set of pages linking to it.
type InlinkIndex struct {
	in map[PageID][]PageID
}

// BuildInlinkIndex derives the inlink index of v: for every page p and
// every q in v.Outlinks(p), p is recorded as an inlinker of q.
func BuildInlinkIndex(v View) InlinkIndex {
	pages := v.Pages()
	idx := InlinkIndex{in: make(map[PageID][]PageID, len(pages))}
	// Pages are visited in sorted order so each inlink list comes out sorted.
	for _, src := range pages {
		for _, dst := range v.Outlinks(src) {
			idx.in[dst] = append(idx.in[dst], src)
		}
	}
	return idx
}

// Inlinks returns the pages linking to id. The returned slice must not be
// modified.
func (idx InlinkIndex) Inlinks(id PageID) []PageID { return idx.in[id] }

// Len returns the number of pages with at least one inlink.
func (idx InlinkIndex) Len() int { return len(idx.in) }
