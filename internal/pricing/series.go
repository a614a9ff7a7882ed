package pricing

import (
	"sort"
	"strings"
)

var squashReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

func squash(s string) string {
	return squashReplacer.Replace(normalizeSlug(s))
}

// CableTypesForSeries returns the cable types belonging to seriesSlug, in
// catalog order. Membership uses the explicit SeriesSlug when present and
// otherwise falls back to a name prefix match ("lmr" matches "LMR-400").
func CableTypesForSeries(c Catalog, seriesSlug string) []CableType {
	if strings.TrimSpace(seriesSlug) == "" {
		return append([]CableType(nil), c.CableTypes...)
	}
	out := make([]CableType, 0)
	for _, ct := range c.CableTypes {
		if InSeries(ct, seriesSlug) {
			out = append(out, ct)
		}
	}
	return out
}

// InSeries reports whether ct belongs to seriesSlug.
func InSeries(ct CableType, seriesSlug string) bool {
	series := squash(seriesSlug)
	if series == "" {
		return false
	}
	if ct.SeriesSlug != "" {
		return squash(ct.SeriesSlug) == series
	}
	return strings.HasPrefix(squash(ct.Slug), series) || strings.HasPrefix(squash(ct.Name), series)
}

// SeriesOf returns the series a cable type belongs to: the explicit slug, or
// the leading alphabetic run of its slug ("lmr-400" -> "lmr").
func SeriesOf(ct CableType) string {
	if ct.SeriesSlug != "" {
		return normalizeSlug(ct.SeriesSlug)
	}
	slug := normalizeSlug(ct.Slug)
	end := strings.IndexFunc(slug, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	if end == -1 {
		return slug
	}
	return slug[:end]
}

// Series lists the distinct series present in the catalog, sorted.
func Series(c Catalog) []string {
	seen := map[string]struct{}{}
	for _, ct := range c.CableTypes {
		if s := SeriesOf(ct); s != "" {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
