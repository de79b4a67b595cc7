package crawler

import (
	"context"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/MrDiipo/pagerank/linkgraph/store/memory"
	"github.com/MrDiipo/pagerank/pipeline"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	pageSuffix          = ".html"
	defaultFetchWorkers = 4
)

// Config encapsulates the settings for configuring the corpus crawler.
type Config struct {
	// The directory holding the corpus pages.
	Dir string

	// The file system to read pages from. If not specified, the operating
	// system file system rooted at Dir will be used.
	FS fs.FS

	// The number of concurrent workers used for reading pages. If not
	// specified, a default value of 4 will be used instead.
	FetchWorkers int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.FS == nil {
		if cfg.Dir == "" {
			err = multierror.Append(err, xerrors.Errorf("corpus directory has not been specified"))
		} else {
			cfg.FS = os.DirFS(cfg.Dir)
		}
	}
	if cfg.FetchWorkers < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for fetch workers"))
	} else if cfg.FetchWorkers == 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Crawler builds a link graph out of a directory of HTML pages. Each file
// whose name ends in ".html" is a page; its name is the page ID.
type Crawler struct {
	cfg Config
	p   *pipeline.Pipeline
}

// NewCrawler returns a new crawler instance.
func NewCrawler(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("crawler: config validation failed: %w", err)
	}
	return &Crawler{
		cfg: cfg,
		p: pipeline.New(
			pipeline.FixedWorkerPool(newFileFetcher(cfg.FS), cfg.FetchWorkers),
			pipeline.FIFO(newLinkExtractor()),
		),
	}, nil
}

// Crawl is a convenience wrapper that creates a Crawler from cfg and runs it
// once.
func Crawl(ctx context.Context, cfg Config) (*graph.Graph, error) {
	c, err := NewCrawler(cfg)
	if err != nil {
		return nil, err
	}
	return c.Crawl(ctx)
}

// Crawl reads every page of the corpus and returns the resulting link graph.
// Links to files that are not part of the corpus are dropped.
func (c *Crawler) Crawl(ctx context.Context) (*graph.Graph, error) {
	pages, err := listPages(c.cfg.FS)
	if err != nil {
		return nil, xerrors.Errorf("crawler: unable to list corpus pages: %w", err)
	}

	store := memory.NewStore()
	for _, page := range pages {
		store.UpsertLink(graph.PageID(page))
	}
	c.cfg.Logger.WithField("pages", len(pages)).Info("discovered corpus pages")

	sink := newGraphUpdater(store)
	if err = c.p.Process(ctx, &pageSource{pages: pages}, sink); err != nil {
		return nil, xerrors.Errorf("crawler: unable to process corpus pages: %w", err)
	}

	g, err := store.Graph()
	if err != nil {
		return nil, xerrors.Errorf("crawler: %w", err)
	}
	c.cfg.Logger.WithFields(logrus.Fields{
		"pages":         g.Len(),
		"links":         g.Edges(),
		"sinks":         len(g.Sinks()),
		"dropped_links": sink.dropped,
	}).Info("built link graph")
	return g, nil
}

// listPages returns the sorted names of the regular ".html" files at the
// root of fsys.
func listPages(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), pageSuffix) {
			continue
		}
		pages = append(pages, entry.Name())
	}
	sort.Strings(pages)
	return pages, nil
}

type pageSource struct {
	pages []string
	index int
}

func (ps *pageSource) Error() error { return nil }

func (ps *pageSource) Next(context.Context) bool {
	if ps.index >= len(ps.pages) {
		return false
	}
	ps.index++
	return true
}

func (ps *pageSource) Payload() pipeline.Payload {
	name := ps.pages[ps.index-1]
	p := payloadPool.Get().(*crawlerPayload)

	p.PageID = graph.PageID(name)
	p.Path = name
	return p
}
