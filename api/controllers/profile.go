package controllers

import (
	"net/http"

	"github.com/reciclacred/backend/api/middleware"
	"github.com/reciclacred/backend/api/responses"
	"github.com/reciclacred/backend/api/validators"
	"github.com/reciclacred/backend/internal/users"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
)

type profileUpdateBody struct {
	Name            *string `json:"name,omitempty"`
	ResponsibleName *string `json:"responsible_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

// ProfileGet returns the authenticated account's profile and balance.
func ProfileGet(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// ProfileUpdate mutates the caller's own profile fields.
func ProfileUpdate(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profileUpdateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, users.UpdateProfileDTO{
			Name:            body.Name,
			ResponsibleName: body.ResponsibleName,
			Phone:           body.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
