package graph

import "golang.org/x/xerrors"

var (
	// ErrInvalidCorpus is returned by New when the supplied links contain a
	// self-link or point to a page that is not part of the corpus.
	ErrInvalidCorpus = xerrors.New("invalid corpus")

	// ErrEmptyCorpus is returned when an operation requires at least one page.
	ErrEmptyCorpus = xerrors.New("corpus contains no pages")

	// ErrUnknownPage is returned when a page lookup fails.
	ErrUnknownPage = xerrors.New("unknown page")
)
