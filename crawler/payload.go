package crawler

import (
	"bytes"
	"sync"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/MrDiipo/pagerank/pipeline"
)

var (
	_ pipeline.Payload = (*crawlerPayload)(nil)

	payloadPool = sync.Pool{
		New: func() interface{} { return new(crawlerPayload) },
	}
)

type crawlerPayload struct {
	PageID graph.PageID
	Path   string

	// The raw file contents as read by the file fetcher.
	RawContent bytes.Buffer

	// Distinct hrefs found in the page, self-links excluded.
	Links []graph.PageID
}

// Clone implements pipeline.Payload.
func (p *crawlerPayload) Clone() pipeline.Payload {
	newP := payloadPool.Get().(*crawlerPayload)
	newP.PageID = p.PageID
	newP.Path = p.Path

	newP.RawContent.Reset()
	_, _ = newP.RawContent.Write(p.RawContent.Bytes())
	newP.Links = append([]graph.PageID(nil), p.Links...)
	return newP
}

// MarkAsProcessed implements pipeline.Payload.
func (p *crawlerPayload) MarkAsProcessed() {
	p.PageID = ""
	p.Path = ""
	p.RawContent.Reset()
	p.Links = p.Links[:0]
	payloadPool.Put(p)
}
