package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

type authHandlers struct {
	validator *Validator
}

// signup handles POST /auth/signup.
func (h *authHandlers) signup() Handler[AuthContext] {
	return WithBody(h.validator, func(w http.ResponseWriter, r *http.Request, c AuthContext, account models.Account) error {
		user, err := c.AuthService.Signup(r.Context(), account)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusCreated, user)
	})
}

// signin handles POST /auth.
func (h *authHandlers) signin() Handler[AuthContext] {
	return WithBody(h.validator, func(w http.ResponseWriter, r *http.Request, c AuthContext, credentials models.Credentials) error {
		token, err := c.AuthService.Signin(r.Context(), credentials)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, token)
	})
}

// whoAmI handles GET /auth/me.
func (h *authHandlers) whoAmI(w http.ResponseWriter, r *http.Request, c AuthContext) error {
	user, err := c.AuthService.WhoAmI(r.Context(), r.Header)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, user)
}

// signOut handles DELETE /auth.
func (h *authHandlers) signOut(w http.ResponseWriter, r *http.Request, c AuthContext) error {
	if err := c.AuthService.SignOut(r.Context(), r.Header); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
