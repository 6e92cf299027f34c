package collection

// Generation numbers fetches so a late response cannot overwrite the result
// of a fetch issued after it. Only the most recently issued generation is
// current.
type Generation struct {
	last uint64
}

// Next issues a new generation, making every earlier one stale.
func (g *Generation) Next() uint64 {
	g.last++
	return g.last
}

// Current reports whether gen is still the latest issued generation.
func (g *Generation) Current(gen uint64) bool {
	return gen != 0 && gen == g.last
}

func (g *Generation) Last() uint64 { return g.last }
