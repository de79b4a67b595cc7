package pagerank

import (
	"sort"

	"github.com/MrDiipo/pagerank/linkgraph/graph"
)

// Distribution assigns a probability to every page of a graph.
type Distribution map[graph.PageID]float64

// Sum returns the total probability mass of the distribution.
func (d Distribution) Sum() float64 { return sumSorted(d) }

// Ranks maps every page of a graph to its estimated rank.
type Ranks map[graph.PageID]float64

// Score is a single entry of a rank mapping.
type Score struct {
	Page graph.PageID `json:"page"`
	Rank float64      `json:"rank"`
}

// Sum returns the sum of all ranks.
func (r Ranks) Sum() float64 { return sumSorted(r) }

// Sorted returns the ranks ordered by page ID.
func (r Ranks) Sorted() []Score {
	scores := make([]Score, 0, len(r))
	for page, rank := range r {
		scores = append(scores, Score{Page: page, Rank: rank})
	}
	sort.Slice(scores, func(l, r int) bool { return scores[l].Page < scores[r].Page })
	return scores
}

// sumSorted adds up the values of m in key order so that repeated calls
// give bit-identical results.
func sumSorted(m map[graph.PageID]float64) float64 {
	keys := make([]graph.PageID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(l, r int) bool { return keys[l] < keys[r] })

	var sum float64
	for _, k := range keys {
		sum += m[k]
	}
	return sum
}
