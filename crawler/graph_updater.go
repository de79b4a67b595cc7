package crawler

import (
	"context"

	"github.com/MrDiipo/pagerank/linkgraph/store/memory"
	"github.com/MrDiipo/pagerank/pipeline"
	"golang.org/x/xerrors"
)

// graphUpdater is the pipeline sink that records the links of each page.
type graphUpdater struct {
	updater *memory.Store

	// Number of links pointing outside the corpus.
	dropped int
}

func newGraphUpdater(updater *memory.Store) *graphUpdater {
	return &graphUpdater{
		updater: updater,
	}
}

func (gu *graphUpdater) Consume(_ context.Context, p pipeline.Payload) error {
	payload := p.(*crawlerPayload)

	for _, dst := range payload.Links {
		// Only links to other pages of the corpus become edges.
		if !gu.updater.HasLink(dst) {
			gu.dropped++
			continue
		}
		if err := gu.updater.UpsertEdge(payload.PageID, dst); err != nil {
			return xerrors.Errorf("record link %q -> %q: %w", payload.PageID, dst, err)
		}
	}
	return nil
}
