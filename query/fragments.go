package query

import "go.appointy.com/gqlclientgen/jerrors"

// color is the DFS node state used by CheckCycles (spec §9 "Detect cycles
// with a colored DFS").
type color int

const (
	white color = iota // unvisited
	gray                // on the current DFS stack
	black               // fully processed, no cycle reachable
)

// CheckCycles detects fragment reference cycles across the whole fragment
// registry (spec §4.2 "A separate pass detects cycles by marking fragments
// in a DFS"). It must run after every fragment in the document has been
// collected (the two-phase handling spec §9 requires for forward
// references), and before any selection is resolved.
func CheckCycles(doc *Document) error {
	colors := make(map[string]color, len(doc.Fragments))
	for name := range doc.Fragments {
		colors[name] = white
	}
	for name := range doc.Fragments {
		if colors[name] == white {
			if err := visitFragment(doc, name, colors, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func visitFragment(doc *Document, name string, colors map[string]color, stack []string) error {
	colors[name] = gray
	stack = append(stack, name)

	frag, ok := doc.Fragments[name]
	if !ok {
		// Dangling fragment spreads are reported by the resolver
		// (UnknownTypeError-adjacent), not here; cycle detection only
		// concerns itself with fragments that do exist.
		colors[name] = black
		return nil
	}

	for _, spreadName := range spreadNames(frag.Root) {
		switch colors[spreadName] {
		case gray:
			cycle := append(append([]string{}, stack...), spreadName)
			return jerrors.Namedf(jerrors.CycleError, spreadName, nil,
				"fragment cycle: %s", joinNames(cycle))
		case white:
			if err := visitFragment(doc, spreadName, colors, stack); err != nil {
				return err
			}
		}
	}

	colors[name] = black
	return nil
}

// spreadNames collects every fragment name directly or transitively spread
// within sel, including those nested inside inline fragments.
func spreadNames(sel Selection) []string {
	var names []string
	for _, it := range sel.Items {
		switch it.Kind {
		case KindFragmentSpread:
			names = append(names, it.FragmentName)
		case KindInlineFragment:
			names = append(names, spreadNames(it.Sub)...)
		case KindField:
			// A spread nested under a field can still reach back to an
			// ancestor fragment, so field sub-selections are walked too.
			names = append(names, spreadNames(it.Sub)...)
		}
	}
	return names
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
