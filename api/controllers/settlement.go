package controllers

import (
	"net/http"

	"github.com/reciclacred/backend/api/middleware"
	"github.com/reciclacred/backend/api/responses"
	"github.com/reciclacred/backend/api/validators"
	"github.com/reciclacred/backend/internal/settlement"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
)

// ResidueCollect settles an offer for the authenticated collector.
func ResidueCollect(svc *settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collectorID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offerID, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.Collect(r.Context(), collectorID, offerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}
