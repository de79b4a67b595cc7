package crawler

import (
	"context"
	"io"
	"io/fs"

	"github.com/MrDiipo/pagerank/pipeline"
	"golang.org/x/xerrors"
)

type fileFetcher struct {
	fsys fs.FS
}

func newFileFetcher(fsys fs.FS) *fileFetcher {
	return &fileFetcher{
		fsys: fsys,
	}
}

func (ff *fileFetcher) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)

	f, err := ff.fsys.Open(payload.Path)
	if err != nil {
		return nil, xerrors.Errorf("open page %q: %w", payload.Path, err)
	}
	_, err = io.Copy(&payload.RawContent, f)
	_ = f.Close()
	if err != nil {
		return nil, xerrors.Errorf("read page %q: %w", payload.Path, err)
	}
	return payload, nil
}
