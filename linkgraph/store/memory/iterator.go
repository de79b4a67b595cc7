package memory

import "github.com/MrDiipo/pagerank/linkgraph/graph"

type linkIterator struct {
	links    []*graph.Link
	curIndex int
}

func (i *linkIterator) Next() bool {
	if i.curIndex >= len(i.links) {
		return false
	}
	i.curIndex++
	return true
}

// Link implements graph.LinkIterator.
func (i *linkIterator) Link() *graph.Link {
	link := new(graph.Link)
	*link = *i.links[i.curIndex-1]
	link.Outlinks = append([]graph.PageID(nil), link.Outlinks...)
	return link
}

// Error implements graph.LinkIterator.
func (i *linkIterator) Error() error {
	return nil
}

// Close implements graph.LinkIterator.
func (i *linkIterator) Close() error {
	return nil
}
