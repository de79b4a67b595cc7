package frontend

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/linkgraph/graph"
	"github.com/MrDiipo/pagerank/service/ranker"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	ranksEndpoint      = "/ranks"
	estimatorEndpoint  = "/ranks/{estimator}"
	transitionEndpoint = "/pages/{page}/transition"
)

// ResultSource provides access to the most recent ranking run.
type ResultSource interface {
	Result() *ranker.Result
}

// Config encapsulates the settings for configuring the front-end service.
type Config struct {
	// The source of the ranking results to serve.
	Results ResultSource

	// The address to listen for incoming requests.
	ListenAddr string

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Results == nil {
		err = multierror.Append(err, xerrors.Errorf("result source has not been provided"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Service exposes a read-only JSON API over the latest ranking run.
type Service struct {
	cfg    Config
	router *mux.Router

	mu   sync.Mutex
	addr net.Addr
}

// NewService creates a new front-end service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("front-end service: config validation failed: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		router: mux.NewRouter(),
	}
	svc.router.HandleFunc(ranksEndpoint, svc.renderRanks).Methods(http.MethodGet)
	svc.router.HandleFunc(estimatorEndpoint, svc.renderEstimatorRanks).Methods(http.MethodGet)
	svc.router.HandleFunc(transitionEndpoint, svc.renderTransition).Methods(http.MethodGet)
	svc.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		svc.renderError(w, http.StatusNotFound, "not found")
	})
	return svc, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "front-end" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	svc.mu.Lock()
	svc.addr = l.Addr()
	svc.mu.Unlock()

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	svc.cfg.Logger.WithField("addr", l.Addr().String()).Info("starting front-end server")
	if err = srv.Serve(l); err == http.ErrServerClosed {
		err = nil
	}
	svc.cfg.Logger.Info("stopped front-end server")
	return err
}

// Addr returns the address the server is listening on or nil if Run has not
// been invoked yet.
func (svc *Service) Addr() net.Addr {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.addr
}

// ServeHTTP implements http.Handler.
func (svc *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

type ranksResponse struct {
	*ranker.Result

	Pages int `json:"pages"`
	Sinks int `json:"sinks"`
}

type estimatorResponse struct {
	Estimator string           `json:"estimator"`
	Ranks     []pagerank.Score `json:"ranks"`
}

type transitionResponse struct {
	Page         graph.PageID     `json:"page"`
	Damping      float64          `json:"damping"`
	Distribution []pagerank.Score `json:"distribution"`
}

func (svc *Service) renderRanks(w http.ResponseWriter, _ *http.Request) {
	res := svc.latest(w)
	if res == nil {
		return
	}
	svc.renderJSON(w, ranksResponse{
		Result: res,
		Pages:  res.Graph.Len(),
		Sinks:  len(res.Graph.Sinks()),
	})
}

func (svc *Service) renderEstimatorRanks(w http.ResponseWriter, r *http.Request) {
	res := svc.latest(w)
	if res == nil {
		return
	}

	var (
		estimator = mux.Vars(r)["estimator"]
		ranks     pagerank.Ranks
	)
	switch estimator {
	case "sampling":
		ranks = res.Sampled
	case "iteration":
		ranks = res.Iterated
	default:
		svc.renderError(w, http.StatusNotFound, "unknown estimator")
		return
	}
	svc.renderJSON(w, estimatorResponse{Estimator: estimator, Ranks: ranks.Sorted()})
}

func (svc *Service) renderTransition(w http.ResponseWriter, r *http.Request) {
	res := svc.latest(w)
	if res == nil {
		return
	}

	page := graph.PageID(mux.Vars(r)["page"])
	dist, err := pagerank.Transition(res.Graph, page, res.Damping)
	if err != nil {
		if xerrors.Is(err, pagerank.ErrInvalidPage) {
			svc.renderError(w, http.StatusBadRequest, "unknown page")
			return
		}
		svc.cfg.Logger.WithField("err", err).Error("unable to compute transition model")
		svc.renderError(w, http.StatusInternalServerError, "internal error")
		return
	}
	svc.renderJSON(w, transitionResponse{
		Page:         page,
		Damping:      res.Damping,
		Distribution: pagerank.Ranks(dist).Sorted(),
	})
}

// latest returns the latest result or renders a 503 response if no ranking
// run has completed yet.
func (svc *Service) latest(w http.ResponseWriter) *ranker.Result {
	res := svc.cfg.Results.Result()
	if res == nil {
		svc.renderError(w, http.StatusServiceUnavailable, "ranking in progress")
	}
	return res
}

func (svc *Service) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (svc *Service) renderJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to render response")
	}
}
