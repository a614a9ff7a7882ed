package quote

import (
	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// QuoteInput asks for the display price of a product under a selection.
type QuoteInput struct {
	ProductID string
	Selection pricing.Selection
}

// QuoteResult is what a product page renders for the current selection.
type QuoteResult struct {
	ProductID   string                `json:"product_id"`
	UnitPrice   decimal.Decimal       `json:"unit_price"`
	Quantity    int                   `json:"quantity"`
	LineTotal   decimal.Decimal       `json:"line_total"`
	Strategy    enums.PricingStrategy `json:"strategy"`
	DisplayOnly bool                  `json:"display_only"`
	PriceKnown  bool                  `json:"price_known"`
	MatchTier   enums.MatchTier       `json:"match_tier"`
	OptionID    string                `json:"option_id,omitempty"`
	Identity    string                `json:"identity"`
	SKU         string                `json:"sku,omitempty"`
	Label       string                `json:"label,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// CartLineInput prices an add-to-cart action. Lines are the caller's current
// cart lines; when present the new line is merged into them.
type CartLineInput struct {
	ProductID string
	Selection pricing.Selection
	Lines     []pricing.CartLine
	MergeMode enums.MergeMode
}

// CartLineResult carries the new line and, when lines were supplied, the
// merged cart.
type CartLineResult struct {
	Line     pricing.CartLine   `json:"line"`
	Lines    []pricing.CartLine `json:"lines,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

// Option is a selectable choice as shown in a product page picker.
type Option struct {
	ID       string             `json:"id,omitempty"`
	Kind     pricing.OptionKind `json:"kind"`
	Title    string             `json:"title"`
	Value    string             `json:"value"`
	Length   *decimal.Decimal   `json:"length,omitempty"`
	Gain     *decimal.Decimal   `json:"gain,omitempty"`
	Price    *decimal.Decimal   `json:"price,omitempty"`
	SKU      string             `json:"sku,omitempty"`
	Position int                `json:"position"`
}

// OptionsResult lists the pickers for a product page.
type OptionsResult struct {
	ProductID   string              `json:"product_id"`
	ProductType enums.ProductType   `json:"product_type"`
	Lengths     []Option            `json:"lengths,omitempty"`
	Gains       []Option            `json:"gains,omitempty"`
	Variants    []Option            `json:"variants,omitempty"`
	Series      []string            `json:"series"`
	CableTypes  []pricing.CableType `json:"cable_types"`
	Warnings    []string            `json:"warnings,omitempty"`
}

func toOptions(in []pricing.NormalizedOption) []Option {
	if len(in) == 0 {
		return nil
	}
	out := make([]Option, 0, len(in))
	for _, o := range in {
		var price *decimal.Decimal
		if o.Price != nil {
			rounded := pricing.RoundCents(*o.Price)
			price = &rounded
		}
		out = append(out, Option{
			ID:       o.SourceID,
			Kind:     o.Kind,
			Title:    o.Title,
			Value:    o.Value,
			Length:   o.Length,
			Gain:     o.Gain,
			Price:    price,
			SKU:      o.SKU,
			Position: o.Position,
		})
	}
	return out
}

func warningStrings(in []error) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, w := range in {
		out = append(out, w.Error())
	}
	return out
}
