package ranker

import (
	"context"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/MrDiipo/pagerank/crawler"
	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Result describes a completed ranking run over a corpus.
type Result struct {
	ID          uuid.UUID      `json:"id"`
	Dir         string         `json:"dir"`
	Damping     float64        `json:"damping"`
	SampleCount int            `json:"sample_count"`
	Passes      int            `json:"passes"`
	Sampled     pagerank.Ranks `json:"sampled"`
	Iterated    pagerank.Ranks `json:"iterated"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`

	// The link graph both estimators ran against.
	Graph *graph.Graph `json:"-"`
}

// Publisher receives the results of completed ranking runs.
type Publisher interface {
	Publish(*Result)
}

// Config encapsulates the settings for configuring the ranker service.
type Config struct {
	// The directory holding the corpus pages.
	Dir string

	// An optional file system to load the corpus from instead of Dir.
	FS fs.FS

	// The number of concurrent workers used for reading pages.
	FetchWorkers int

	// The estimator parameters.
	Ranking pagerank.Config

	// A clock instance for generating time-related events. If not
	// specified, the default wall-clock will be used instead.
	Clock clock.Clock

	// The time between subsequent ranking runs. A zero value makes Run
	// execute a single ranking run.
	UpdateInterval time.Duration

	// The publisher that receives every completed run. Required by Run.
	Publisher Publisher

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Dir == "" && cfg.FS == nil {
		err = multierror.Append(err, xerrors.Errorf("corpus directory has not been specified"))
	}
	if cfg.FetchWorkers < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for fetch workers"))
	}
	if cfg.UpdateInterval < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for update interval"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	if cfg.Ranking.Logger == nil {
		cfg.Ranking.Logger = cfg.Logger
	}
	return err
}

// Service loads a corpus and ranks it with both the sampling and the
// iterative estimators.
type Service struct {
	cfg Config

	// Serializes ranking runs; the estimators are not safe for concurrent use.
	mu        sync.Mutex
	sampler   *pagerank.Sampler
	iterative *pagerank.Iterative
}

// NewService creates a new ranker service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service: config validation failed: %w", err)
	}

	sampler, err := pagerank.NewSampler(cfg.Ranking)
	if err != nil {
		return nil, xerrors.Errorf("ranker service: %w", err)
	}
	iterative, err := pagerank.NewIterative(cfg.Ranking)
	if err != nil {
		return nil, xerrors.Errorf("ranker service: %w", err)
	}

	return &Service{
		cfg:       cfg,
		sampler:   sampler,
		iterative: iterative,
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "ranker" }

// Run implements service.Service. It ranks the corpus immediately and then
// once every UpdateInterval, publishing each result.
func (svc *Service) Run(ctx context.Context) error {
	if svc.cfg.Publisher == nil {
		return xerrors.Errorf("ranker service: result publisher has not been provided")
	}
	svc.cfg.Logger.WithField("update_interval", svc.cfg.UpdateInterval.String()).Info("starting service")
	defer svc.cfg.Logger.Info("stopped service")

	for {
		res, err := svc.Rank(ctx)
		if err != nil {
			return err
		}
		svc.cfg.Publisher.Publish(res)

		if svc.cfg.UpdateInterval == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
		}
	}
}

// Rank performs a single ranking run: it loads the corpus and runs both
// estimators against it.
func (svc *Service) Rank(ctx context.Context) (*Result, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	res := &Result{
		ID:          uuid.New(),
		Dir:         svc.cfg.Dir,
		Damping:     svc.sampler.DampingFactor(),
		SampleCount: svc.sampler.SampleCount(),
		StartedAt:   svc.cfg.Clock.Now(),
	}
	logger := svc.cfg.Logger.WithField("run_id", res.ID.String())
	logger.WithField("dir", res.Dir).Info("starting ranking run")

	g, err := crawler.Crawl(ctx, crawler.Config{
		Dir:          svc.cfg.Dir,
		FS:           svc.cfg.FS,
		FetchWorkers: svc.cfg.FetchWorkers,
		Logger:       logger,
	})
	if err != nil {
		return nil, xerrors.Errorf("ranker: unable to load corpus: %w", err)
	}
	res.Graph = g
	loadedAt := svc.cfg.Clock.Now()

	if res.Sampled, err = svc.sampler.Rank(g); err != nil {
		return nil, xerrors.Errorf("ranker: %w", err)
	}
	sampledAt := svc.cfg.Clock.Now()

	if res.Iterated, err = svc.iterative.Rank(g); err != nil {
		return nil, xerrors.Errorf("ranker: %w", err)
	}
	res.Passes = svc.iterative.Passes()
	res.FinishedAt = svc.cfg.Clock.Now()

	logger.WithFields(logrus.Fields{
		"pages":          g.Len(),
		"passes":         res.Passes,
		"load_time":      loadedAt.Sub(res.StartedAt).String(),
		"sampling_time":  sampledAt.Sub(loadedAt).String(),
		"iteration_time": res.FinishedAt.Sub(sampledAt).String(),
		"elapsed_time":   res.FinishedAt.Sub(res.StartedAt).String(),
	}).Info("completed ranking run")
	return res, nil
}

// Latest keeps track of the most recently published result. It is safe for
// concurrent use.
type Latest struct {
	mu  sync.RWMutex
	res *Result
}

// Publish implements Publisher.
func (l *Latest) Publish(res *Result) {
	l.mu.Lock()
	l.res = res
	l.mu.Unlock()
}

// Result returns the most recently published result or nil if no run has
// completed yet.
func (l *Latest) Result() *Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.res
}
