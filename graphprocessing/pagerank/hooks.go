package pagerank

// Hooks encapsulates a series of callbacks that are invoked by the iterative
// estimator around each pass. Hooks are optional.
type Hooks struct {
	// PrePass, if defined, is invoked before running the next pass.
	PrePass func(pass int)

	// PostPass, if defined, is invoked after running a pass with the largest
	// absolute rank change observed during that pass.
	PostPass func(pass int, maxDelta float64)
}

func patchEmptyHooks(h *Hooks) {
	if h.PrePass == nil {
		h.PrePass = func(int) {}
	}
	if h.PostPass == nil {
		h.PostPass = func(int, float64) {}
	}
}
