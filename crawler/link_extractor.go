package crawler

import (
	"context"
	"regexp"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/MrDiipo/pagerank/pipeline"
)

var hrefRegex = regexp.MustCompile(`<a\s+(?:[^>]*?)href="([^"]*)"`)

type linkExtractor struct{}

func newLinkExtractor() *linkExtractor {
	return &linkExtractor{}
}

func (le *linkExtractor) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)

	seen := make(map[graph.PageID]struct{})
	for _, match := range hrefRegex.FindAllSubmatch(payload.RawContent.Bytes(), -1) {
		link := graph.PageID(match[1])
		if link == payload.PageID {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		payload.Links = append(payload.Links, link)
	}
	return payload, nil
}
