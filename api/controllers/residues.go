package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/reciclacred/backend/api/middleware"
	"github.com/reciclacred/backend/api/responses"
	"github.com/reciclacred/backend/api/validators"
	"github.com/reciclacred/backend/internal/residues"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
)

type createResidueBody struct {
	Title      string          `json:"title" validate:"required"`
	Category   string          `json:"category" validate:"required"`
	QuantityKg decimal.Decimal `json:"quantity_kg" validate:"required"`
	Location   string          `json:"location" validate:"required"`
}

type updateResidueBody struct {
	Title      *string          `json:"title,omitempty"`
	Category   *string          `json:"category,omitempty"`
	QuantityKg *decimal.Decimal `json:"quantity_kg,omitempty"`
	Location   *string          `json:"location,omitempty"`
}

// ResidueCreate lists a new offer for the authenticated organization.
func ResidueCreate(svc *residues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "residues service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ownerID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createResidueBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Create(r.Context(), ownerID, residues.CreateOfferInput{
			Title:      body.Title,
			Category:   body.Category,
			QuantityKg: body.QuantityKg,
			Location:   body.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// ResidueList returns the offers visible to the caller.
func ResidueList(svc *residues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "residues service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requesterID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offers, err := svc.List(r.Context(), requesterID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offers)
	}
}

// ResidueGet returns a single offer.
func ResidueGet(svc *residues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "residues service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offerID, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Get(r.Context(), offerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

// ResidueUpdate mutates an offer the caller owns.
func ResidueUpdate(svc *residues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "residues service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ownerID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offerID, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateResidueBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Update(r.Context(), ownerID, offerID, residues.UpdateOfferInput{
			Title:      body.Title,
			Category:   body.Category,
			QuantityKg: body.QuantityKg,
			Location:   body.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

// ResidueDelete withdraws an offer the caller owns.
func ResidueDelete(svc *residues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "residues service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ownerID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offerID, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), ownerID, offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
