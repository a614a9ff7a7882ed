package pricing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// OptionKind records which source list a NormalizedOption came from.
type OptionKind string

const (
	OptionKindVariant OptionKind = "variant"
	OptionKindGain    OptionKind = "gain"
	OptionKindLength  OptionKind = "length"
)

var (
	numberRe       = regexp.MustCompile(`\d+(\.\d+)?`)
	gainRe         = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*dbi`)
	lengthPrefixRe = regexp.MustCompile(`(?i)^\s*length\s*:\s*`)
	dbiSuffixRe    = regexp.MustCompile(`(?i)\s*dbi\s*$`)
)

// NormalizedOption is the single shape strategies see for both modern
// variants and legacy options.
type NormalizedOption struct {
	Kind     OptionKind
	SourceID string
	Title    string
	Value    string
	Length   *decimal.Decimal
	Gain     *decimal.Decimal
	Price    *decimal.Decimal
	SKU      string
	Position int
}

// IsVariant reports whether the option is backed by a real variant.
func (o NormalizedOption) IsVariant() bool {
	return o.Kind == OptionKindVariant
}

// key is the identity fragment for the option.
func (o NormalizedOption) key() string {
	if o.SourceID != "" {
		return o.SourceID
	}
	switch o.Kind {
	case OptionKindGain:
		if o.Gain != nil {
			return o.Gain.String()
		}
	case OptionKindLength:
		if o.Length != nil {
			return o.Length.String()
		}
	}
	return normalizeSlug(o.Value)
}

// Index is the lookup structure built once per product snapshot.
type Index struct {
	productType enums.ProductType
	variants    []NormalizedOption
	gains       []NormalizedOption
	lengths     []NormalizedOption
	byID        map[string]NormalizedOption
	warnings    error
}

// BuildIndex normalises the product's variants and legacy options. Malformed
// legacy options are skipped and reported through Warnings.
func BuildIndex(p Product) *Index {
	idx := &Index{
		productType: p.Type,
		variants:    make([]NormalizedOption, 0, len(p.Variants)),
		byID:        make(map[string]NormalizedOption, len(p.Variants)),
	}

	for i, v := range p.Variants {
		opt := variantOption(p.Type, i, v)
		idx.variants = append(idx.variants, opt)
		idx.register(opt)
	}
	idx.gains = idx.legacyOptions(OptionKindGain, p.GainOptions)
	idx.lengths = idx.legacyOptions(OptionKindLength, p.LengthOptions)

	return idx
}

func (idx *Index) legacyOptions(kind OptionKind, raw []LegacyOption) []NormalizedOption {
	out := make([]NormalizedOption, 0, len(raw))
	for i, o := range raw {
		opt, ok := legacyOption(kind, i, o)
		if !ok {
			idx.warnings = multierr.Append(idx.warnings, &MalformedOptionWarning{Kind: kind, Position: i})
			continue
		}
		out = append(out, opt)
		idx.register(opt)
	}
	return out
}

// register keeps the first option seen for an ID.
func (idx *Index) register(opt NormalizedOption) {
	if opt.SourceID == "" {
		return
	}
	if _, exists := idx.byID[opt.SourceID]; exists {
		return
	}
	idx.byID[opt.SourceID] = opt
}

func variantOption(productType enums.ProductType, position int, v Variant) NormalizedOption {
	gain, gainDisplay := ParseGain(v.Title)
	length, lengthDisplay := ParseLength(v.Title)

	value := strings.TrimSpace(v.Title)
	switch productType {
	case enums.ProductTypeAntenna:
		value = gainDisplay
	case enums.ProductTypeCable:
		value = lengthDisplay
	}

	opt := NormalizedOption{
		Kind:     OptionKindVariant,
		SourceID: v.ID,
		Title:    v.Title,
		Value:    value,
		Length:   length,
		Gain:     gain,
		SKU:      v.SKU,
		Position: position,
	}
	if price, ok := v.UnitPrice(); ok {
		opt.Price = &price
	}
	return opt
}

func legacyOption(kind OptionKind, position int, o LegacyOption) (NormalizedOption, bool) {
	title := strings.TrimSpace(o.Value)
	if title == "" {
		return NormalizedOption{}, false
	}

	opt := NormalizedOption{
		Kind:     kind,
		SourceID: o.VariantID,
		Title:    o.Value,
		SKU:      o.SKU,
		Position: position,
	}
	gain, gainDisplay := ParseGain(title)
	length, lengthDisplay := ParseLength(title)
	opt.Gain = gain
	opt.Length = length
	if kind == OptionKindGain {
		opt.Value = gainDisplay
	} else {
		opt.Value = lengthDisplay
	}
	if price, ok := o.UnitPrice(); ok {
		opt.Price = &price
	}
	return opt, true
}

// HasVariants reports whether the product carries modern variants.
func (idx *Index) HasVariants() bool {
	return len(idx.variants) > 0
}

// Len returns the number of indexed options across all sources.
func (idx *Index) Len() int {
	return len(idx.variants) + len(idx.gains) + len(idx.lengths)
}

// Options returns every indexed option in source order, variants first.
func (idx *Index) Options() []NormalizedOption {
	out := make([]NormalizedOption, 0, idx.Len())
	out = append(out, idx.variants...)
	out = append(out, idx.gains...)
	out = append(out, idx.lengths...)
	return out
}

// Variants returns the variant-backed options in source order.
func (idx *Index) Variants() []NormalizedOption {
	return append([]NormalizedOption(nil), idx.variants...)
}

// ByID looks up a variant or legacy option by its source identifier.
func (idx *Index) ByID(id string) (NormalizedOption, bool) {
	if id == "" {
		return NormalizedOption{}, false
	}
	opt, ok := idx.byID[id]
	return opt, ok
}

// SortedByLength returns the length choices shown to the customer: variants
// when present, legacy length options otherwise. Options without a number
// sort last and ties keep source order. LengthIndex selections index into it.
func (idx *Index) SortedByLength() []NormalizedOption {
	src := idx.lengths
	if idx.HasVariants() {
		src = idx.variants
	}
	return sortByNumeric(src, func(o NormalizedOption) *decimal.Decimal { return o.Length })
}

// SortedByGain is the gain counterpart of SortedByLength. GainIndex
// selections index into it.
func (idx *Index) SortedByGain() []NormalizedOption {
	src := idx.gains
	if idx.HasVariants() {
		src = idx.variants
	}
	return sortByNumeric(src, func(o NormalizedOption) *decimal.Decimal { return o.Gain })
}

// FindLength resolves a free-form length value ("25", "25 ft", "Length: 25 ft")
// against the length choices.
func (idx *Index) FindLength(value string) (NormalizedOption, bool) {
	if strings.TrimSpace(value) == "" {
		return NormalizedOption{}, false
	}
	choices := idx.SortedByLength()
	if want, _ := ParseLength(value); want != nil {
		for _, opt := range choices {
			if opt.Length != nil && opt.Length.Equal(*want) {
				return opt, true
			}
		}
	}
	key := normalizeSlug(value)
	for _, opt := range choices {
		if normalizeSlug(opt.Value) == key || normalizeSlug(opt.Title) == key {
			return opt, true
		}
	}
	return NormalizedOption{}, false
}

// Warnings lists the soft warnings raised while building the index.
func (idx *Index) Warnings() []error {
	return multierr.Errors(idx.warnings)
}

func sortByNumeric(src []NormalizedOption, key func(NormalizedOption) *decimal.Decimal) []NormalizedOption {
	out := append([]NormalizedOption(nil), src...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.LessThan(*b)
		}
	})
	return out
}

// ExtractNumber returns the first decimal number in s.
func ExtractNumber(s string) *decimal.Decimal {
	match := numberRe.FindString(s)
	if match == "" {
		return nil
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return nil
	}
	return &d
}

// ParseLength strips a "Length:" prefix and a stray "dBi" suffix before
// extracting the numeric length. Some catalogs tag gain suffixes onto length
// variants.
func ParseLength(title string) (*decimal.Decimal, string) {
	s := lengthPrefixRe.ReplaceAllString(title, "")
	s = strings.TrimSpace(dbiSuffixRe.ReplaceAllString(s, ""))
	return ExtractNumber(s), s
}

// ParseGain extracts the number preceding "dBi". Without a dBi marker the
// display value is the raw title and the sort key is its first number.
func ParseGain(title string) (*decimal.Decimal, string) {
	if m := gainRe.FindStringSubmatch(title); m != nil {
		if d, err := decimal.NewFromString(m[1]); err == nil {
			return &d, m[1] + "dBi"
		}
	}
	trimmed := strings.TrimSpace(title)
	return ExtractNumber(trimmed), trimmed
}

// canonicalLength renders a length selection so "25", "25 ft" and
// "Length: 25 ft" produce the same identity fragment.
func canonicalLength(value string) string {
	if n, _ := ParseLength(value); n != nil {
		return n.String()
	}
	return normalizeSlug(value)
}
