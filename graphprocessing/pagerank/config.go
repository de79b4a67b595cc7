package pagerank

import (
	"io"
	"math/rand"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	defaultDampingFactor        = 0.85
	defaultSampleCount          = 10000
	defaultConvergenceThreshold = 0.001
)

// Config encapsulates the parameters shared by the PageRank estimators.
type Config struct {
	// DampingFactor is the probability that a random surfer follows one of
	// the outgoing links of the current page instead of jumping to a random
	// page of the corpus. It must lie in (0, 1).
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// SampleCount is the number of pages drawn by the sampling estimator.
	//
	// If not specified, a default value of 10000 will be used instead.
	SampleCount int

	// The iterative estimator stops once no page rank changes by more than
	// ConvergenceThreshold between two consecutive passes.
	//
	// If not specified, a default value of 0.001 will be used instead.
	ConvergenceThreshold float64

	// MaxPasses bounds the number of passes of the iterative estimator. A
	// zero value leaves it unbounded.
	MaxPasses int

	// Rand is the random source of the sampling estimator. If nil, a
	// source seeded with Seed is created; a zero Seed selects a seed based
	// on the current time.
	Rand *rand.Rand
	Seed int64

	// Hooks observe the passes of the iterative estimator.
	Hooks Hooks

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

// validate checks whether the configuration is valid and sets the default
// values where required.
func (cfg *Config) validate() error {
	var err error
	if cfg.DampingFactor < 0 || cfg.DampingFactor >= 1 {
		err = multierror.Append(err, xerrors.Errorf("damping factor must be in the range (0, 1): %w", ErrInvalidParameter))
	} else if cfg.DampingFactor == 0 {
		cfg.DampingFactor = defaultDampingFactor
	}

	if cfg.SampleCount < 0 {
		err = multierror.Append(err, xerrors.Errorf("sample count must be a positive integer: %w", ErrInvalidParameter))
	} else if cfg.SampleCount == 0 {
		cfg.SampleCount = defaultSampleCount
	}

	if cfg.ConvergenceThreshold < 0 || cfg.ConvergenceThreshold >= 1 {
		err = multierror.Append(err, xerrors.Errorf("convergence threshold must be in the range (0, 1): %w", ErrInvalidParameter))
	} else if cfg.ConvergenceThreshold == 0 {
		cfg.ConvergenceThreshold = defaultConvergenceThreshold
	}

	if cfg.MaxPasses < 0 {
		err = multierror.Append(err, xerrors.Errorf("max passes cannot be negative: %w", ErrInvalidParameter))
	}

	if cfg.Rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cfg.Rand = rand.New(rand.NewSource(seed))
	}
	patchEmptyHooks(&cfg.Hooks)
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}
