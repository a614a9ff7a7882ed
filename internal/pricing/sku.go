package pricing

import (
	"fmt"
)

// ResolveSKU picks the SKU to display. Families populate SKUs at different
// levels, so the first defined value wins: selected option, product, first
// variant, then the first legacy gain option.
func ResolveSKU(p Product, sel Selection) string {
	idx := BuildIndex(p)
	return skuFor(p, resolveSelection(p, sel, Catalog{}, idx))
}

func skuFor(p Product, r resolution) string {
	if r.option != nil && r.option.SKU != "" {
		return r.option.SKU
	}
	if p.SKU != "" {
		return p.SKU
	}
	if len(p.Variants) > 0 && p.Variants[0].SKU != "" {
		return p.Variants[0].SKU
	}
	if len(p.GainOptions) > 0 && p.GainOptions[0].SKU != "" {
		return p.GainOptions[0].SKU
	}
	return ""
}

// DisplayLabel describes the selected configuration, or "" before a choice.
func DisplayLabel(p Product, sel Selection, catalog Catalog) string {
	idx := BuildIndex(p)
	return labelFor(resolveSelection(p, sel, catalog, idx))
}

func labelFor(r resolution) string {
	switch {
	case r.option != nil:
		return r.option.Value
	case r.length != nil:
		return fmt.Sprintf("%s ft", r.length.String())
	case r.cableType != nil:
		return r.cableType.Name
	case r.typeSlug != "":
		return r.typeSlug
	}
	return ""
}
