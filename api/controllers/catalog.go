package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rflink-backend/api/responses"
	"github.com/angelmondragon/rflink-backend/api/validators"
	"github.com/angelmondragon/rflink-backend/internal/catalog"
	"github.com/angelmondragon/rflink-backend/internal/pricing"
	"github.com/angelmondragon/rflink-backend/internal/quote"
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
)

type productSnapshotRequest struct {
	PriceUnit string          `json:"price_unit,omitempty" validate:"omitempty,oneof=cents decimal per_foot unknown"`
	Source    string          `json:"source,omitempty" validate:"omitempty,oneof=commerce cms legacy"`
	Product   pricing.Product `json:"product"`
}

type cableTypesRequest struct {
	CableTypes []pricing.CableType `json:"cable_types" validate:"required,min=1"`
}

// CatalogOptions lists the pickers for a product page, with cable types
// filtered by the optional series query parameter.
func CatalogOptions(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		series, err := validators.ParseQuerySlug(r, "series")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Options(r.Context(), productID, series)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CatalogUpsertProduct ingests a product snapshot pushed by a sync adapter.
// The path ID is authoritative; a conflicting body ID is rejected.
func CatalogUpsertProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productSnapshotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Product.ID == "" {
			payload.Product.ID = productID
		}
		if payload.Product.ID != productID {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.InvalidField("product.id", "product id does not match path"))
			return
		}

		product, err := svc.IngestProduct(r.Context(), catalog.Snapshot{
			Product:   payload.Product,
			PriceUnit: enums.PriceUnit(payload.PriceUnit),
			Source:    enums.SnapshotSource(payload.Source),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteProduct drops the snapshot of a product that was unpublished upstream.
func CatalogDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product_id": productID, "deleted": true})
	}
}

// CatalogUpsertCableTypes bulk-upserts the cable catalog keyed by slug.
func CatalogUpsertCableTypes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload cableTypesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpsertCableTypes(r.Context(), payload.CableTypes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
