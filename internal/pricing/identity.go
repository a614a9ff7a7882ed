package pricing

import (
	"strings"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
)

// LineIdentity derives the cart-line key for a product and selection. Only
// price-relevant selection fields take part: quantity, thumbnails and the
// like never change it. Before a real choice is made it is the bare product ID.
func LineIdentity(p Product, sel Selection, catalog Catalog) string {
	idx := BuildIndex(p)
	return identityFor(p, resolveSelection(p, sel, catalog, idx))
}

func identityFor(p Product, r resolution) string {
	switch r.strategy {
	case enums.PricingStrategyPerFoot, enums.PricingStrategyConnectorPair:
		if r.lengthKey != "" {
			return joinIdentity(p.ID, r.lengthKey)
		}
	case enums.PricingStrategyStandaloneConnector:
		if r.series != "" && r.typeSlug != "" {
			return joinIdentity(p.ID, r.series, r.typeSlug)
		}
	default:
		if r.option != nil {
			return joinIdentity(p.ID, r.option.key())
		}
	}
	return p.ID
}

func joinIdentity(parts ...string) string {
	return strings.Join(parts, "-")
}

// MergeLine folds line into lines. A line with a matching identity has its
// quantity summed (MergeModeAdd) or overwritten (MergeModeReplace) and takes
// the newer price; otherwise line is appended. lines is not modified.
func MergeLine(lines []CartLine, line CartLine, mode enums.MergeMode) []CartLine {
	out := make([]CartLine, len(lines), len(lines)+1)
	copy(out, lines)
	for i := range out {
		if out[i].Identity != line.Identity {
			continue
		}
		qty := line.Quantity
		if mode == enums.MergeModeAdd {
			qty += out[i].Quantity
		}
		merged := line
		merged.Quantity = qty
		out[i] = merged
		return out
	}
	return append(out, line)
}
