package controllers

import (
	"net/http"

	"github.com/reciclacred/backend/api/responses"
	"github.com/reciclacred/backend/api/validators"
	"github.com/reciclacred/backend/internal/auth"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
)

// PasswordResetRequest issues a reset token. The response never reveals
// whether the email exists; in production the token goes out by email.
func PasswordResetRequest(svc auth.PasswordResetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "reset service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.PasswordResetRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.Request(r.Context(), body.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

// PasswordResetConfirm redeems a reset token for a new password.
func PasswordResetConfirm(svc auth.PasswordResetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "reset service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.PasswordResetConfirm
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Confirm(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "password_updated"})
	}
}
