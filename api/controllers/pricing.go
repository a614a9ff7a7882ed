package controllers

import (
	"net/http"

	"github.com/angelmondragon/rflink-backend/api/responses"
	"github.com/angelmondragon/rflink-backend/api/validators"
	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/internal/quote"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
)

type quoteRequest struct {
	ProductID string            `json:"product_id" validate:"required,max=128"`
	Selection pricing.Selection `json:"selection"`
}

type cartLineRequest struct {
	ProductID string             `json:"product_id" validate:"required,max=128"`
	Selection pricing.Selection  `json:"selection"`
	Lines     []pricing.CartLine `json:"lines,omitempty"`
	MergeMode string             `json:"merge_mode,omitempty" validate:"omitempty,oneof=add replace"`
}

// PricingQuote returns the display quote for a selection. Missing selections
// never fail here; the quote falls back to a representative price.
func PricingQuote(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), quote.QuoteInput{
			ProductID: payload.ProductID,
			Selection: payload.Selection,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PricingCartLine validates a selection for add-to-cart and returns the line
// descriptor, merged into the supplied lines when present.
func PricingCartLine(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CartLine(r.Context(), quote.CartLineInput{
			ProductID: payload.ProductID,
			Selection: payload.Selection,
			Lines:     payload.Lines,
			MergeMode: enums.MergeMode(payload.MergeMode),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
