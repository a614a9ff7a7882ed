package enums

import "fmt"

// ProductType identifies the product family the pricing engine dispatches on.
type ProductType string

const (
	ProductTypeAntenna   ProductType = "antenna"
	ProductTypeCable     ProductType = "cable"
	ProductTypeConnector ProductType = "connector"
)

var validProductTypes = []ProductType{
	ProductTypeAntenna,
	ProductTypeCable,
	ProductTypeConnector,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// PriceUnit tags the unit a source price is expressed in.
type PriceUnit string

const (
	PriceUnitCents   PriceUnit = "cents"
	PriceUnitDecimal PriceUnit = "decimal"
	PriceUnitPerFoot PriceUnit = "per_foot"
	// PriceUnitUnknown marks legacy flat prices whose unit is inferred from magnitude.
	PriceUnitUnknown PriceUnit = "unknown"
)

var validPriceUnits = []PriceUnit{
	PriceUnitCents,
	PriceUnitDecimal,
	PriceUnitPerFoot,
	PriceUnitUnknown,
}

// String implements fmt.Stringer.
func (u PriceUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known PriceUnit.
func (u PriceUnit) IsValid() bool {
	for _, candidate := range validPriceUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParsePriceUnit converts raw input into a PriceUnit. Empty input maps to PriceUnitUnknown.
func ParsePriceUnit(value string) (PriceUnit, error) {
	if value == "" {
		return PriceUnitUnknown, nil
	}
	for _, candidate := range validPriceUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price unit %q", value)
}

// PricingStrategy names the algorithm that produced a unit price.
type PricingStrategy string

const (
	PricingStrategyFlatVariant         PricingStrategy = "flat_variant"
	PricingStrategyPerFoot             PricingStrategy = "per_foot"
	PricingStrategyConnectorPair       PricingStrategy = "connector_pair"
	PricingStrategyStandaloneConnector PricingStrategy = "standalone_connector"
	PricingStrategyLegacyGain          PricingStrategy = "legacy_gain"
	PricingStrategyLowestPrice         PricingStrategy = "lowest_price"
	PricingStrategyProductPrice        PricingStrategy = "product_price"
)

var validPricingStrategies = []PricingStrategy{
	PricingStrategyFlatVariant,
	PricingStrategyPerFoot,
	PricingStrategyConnectorPair,
	PricingStrategyStandaloneConnector,
	PricingStrategyLegacyGain,
	PricingStrategyLowestPrice,
	PricingStrategyProductPrice,
}

// String implements fmt.Stringer.
func (s PricingStrategy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PricingStrategy.
func (s PricingStrategy) IsValid() bool {
	for _, candidate := range validPricingStrategies {
		if candidate == s {
			return true
		}
	}
	return false
}

// MatchTier records which connector pricing match step succeeded.
type MatchTier string

const (
	MatchTierExact     MatchTier = "exact"
	MatchTierCanonical MatchTier = "canonical"
	MatchTierSubstring MatchTier = "substring"
	MatchTierNone      MatchTier = "none"
)

var validMatchTiers = []MatchTier{
	MatchTierExact,
	MatchTierCanonical,
	MatchTierSubstring,
	MatchTierNone,
}

// String implements fmt.Stringer.
func (t MatchTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known MatchTier.
func (t MatchTier) IsValid() bool {
	for _, candidate := range validMatchTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsFallback reports whether the tier is the lossy substring fallback.
func (t MatchTier) IsFallback() bool {
	return t == MatchTierSubstring
}

// MergeMode controls how a cart line is folded into existing lines with the same identity.
type MergeMode string

const (
	MergeModeAdd     MergeMode = "add"
	MergeModeReplace MergeMode = "replace"
)

var validMergeModes = []MergeMode{
	MergeModeAdd,
	MergeModeReplace,
}

// String implements fmt.Stringer.
func (m MergeMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MergeMode.
func (m MergeMode) IsValid() bool {
	for _, candidate := range validMergeModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMergeMode converts raw input into a MergeMode.
func ParseMergeMode(value string) (MergeMode, error) {
	for _, candidate := range validMergeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid merge mode %q", value)
}

// SnapshotSource names the upstream system a product snapshot was ingested from.
type SnapshotSource string

const (
	SnapshotSourceCommerce SnapshotSource = "commerce"
	SnapshotSourceCMS      SnapshotSource = "cms"
	SnapshotSourceLegacy   SnapshotSource = "legacy"
)

var validSnapshotSources = []SnapshotSource{
	SnapshotSourceCommerce,
	SnapshotSourceCMS,
	SnapshotSourceLegacy,
}

// String implements fmt.Stringer.
func (s SnapshotSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SnapshotSource.
func (s SnapshotSource) IsValid() bool {
	for _, candidate := range validSnapshotSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSnapshotSource converts raw input into a SnapshotSource.
func ParseSnapshotSource(value string) (SnapshotSource, error) {
	for _, candidate := range validSnapshotSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid snapshot source %q", value)
}
