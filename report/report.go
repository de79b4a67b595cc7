// Package report renders the output of ranking runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/MrDiipo/pagerank/service/ranker"
	"golang.org/x/xerrors"
)

// SamplingTitle returns the heading used for ranks produced by the sampling
// estimator with n draws.
func SamplingTitle(n int) string {
	return fmt.Sprintf("PageRank Results from Sampling (n = %d)", n)
}

// IterationTitle is the heading used for ranks produced by the iterative
// estimator.
const IterationTitle = "PageRank Results from Iteration"

// WriteText writes title followed by one line per page, ordered by page ID,
// with ranks rounded to four decimals.
func WriteText(w io.Writer, title string, ranks pagerank.Ranks) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return xerrors.Errorf("report: %w", err)
	}
	for _, score := range ranks.Sorted() {
		if _, err := fmt.Fprintf(w, "  %s: %.4f\n", score.Page, score.Rank); err != nil {
			return xerrors.Errorf("report: %w", err)
		}
	}
	return nil
}

// WriteResultText writes both rank mappings of res separated by a blank
// line.
func WriteResultText(w io.Writer, res *ranker.Result) error {
	if err := WriteText(w, SamplingTitle(res.SampleCount), res.Sampled); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return xerrors.Errorf("report: %w", err)
	}
	return WriteText(w, IterationTitle, res.Iterated)
}

// WriteJSON writes res as an indented JSON document.
func WriteJSON(w io.Writer, res *ranker.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return xerrors.Errorf("report: %w", err)
	}
	return nil
}
