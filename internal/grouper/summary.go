package grouper

// Summary holds counts describing a grouped mapping.
type Summary struct {
	Assets     int // base keys
	Animations int // base keys with more than one slot
	Slots      int // total slots, set or not
	Holes      int // unset slots
}

// Summarize counts the assets, animations and slots in a.
func Summarize(a *Assets) Summary {
	var s Summary
	for _, k := range a.keys {
		seq := a.seqs[k]
		s.Assets++
		if len(seq) > 1 {
			s.Animations++
		}
		s.Slots += len(seq)
		s.Holes += len(seq.Holes())
	}
	return s
}

// Describe returns a short label for an asset's sequence: "static",
// "animation" or "empty".
func Describe(seq Sequence) string {
	switch {
	case len(seq) == 0:
		return "empty"
	case len(seq) == 1:
		return "static"
	default:
		return "animation"
	}
}
