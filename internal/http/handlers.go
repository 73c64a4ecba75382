package http

import (
	"errors"
	"net/http"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if a.DB != nil {
		if err := a.DB.Ping(ctx); err != nil {
			a.Logger.Error("db ping failed", "err", err)
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Register an account
// @Tags account
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration payload"
// @Success 200 {boolean} boolean "true"
// @Failure 400 {string} string "User already exists."
// @Failure 500 {object} ErrorResponse
// @Router /account/create [post]
func (a *API) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[RegisterRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling registration request", "err", err.Error())
		err = encode(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	err = a.Accounts.Register(ctx, req.toInput())
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			a.Logger.DebugContext(ctx, "registration rejected", "email", req.Email, "problems", len(verr.Descriptions))
			err = encode(w, r, http.StatusBadRequest, verr.Descriptions)
		case errors.Is(err, domain.ErrConflict):
			err = encode(w, r, http.StatusBadRequest, "User already exists.")
		default:
			a.Logger.ErrorContext(ctx, "creating account", "email", req.Email, "err", err.Error())
			err = encode(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	err = encode(w, r, http.StatusOK, true)
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Log in and receive a bearer token
// @Tags account
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login payload"
// @Success 200 {string} string "signed token"
// @Failure 400 {boolean} boolean "false"
// @Failure 404 "No such user"
// @Failure 500 {object} ErrorResponse
// @Router /account/login [post]
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[LoginRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling login request", "err", err.Error())
		err = encode(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	signed, err := a.Accounts.Login(ctx, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			return
		case errors.Is(err, domain.ErrInvalidCredentials):
			err = encode(w, r, http.StatusBadRequest, false)
		default:
			a.Logger.ErrorContext(ctx, "logging in", "email", req.Email, "err", err.Error())
			err = encode(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	err = encode(w, r, http.StatusOK, signed)
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Admin and manager resource
// @Tags protected
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /list [get]
func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	err := encode(w, r, http.StatusOK, "Admin and Manager only can have access")
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}

// @Summary Admin and adult-user resource
// @Tags protected
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /single [get]
func (a *API) handleSingle(w http.ResponseWriter, r *http.Request) {
	err := encode(w, r, http.StatusOK, "Admin and User only")
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}

// @Summary Resource for every authenticated role
// @Tags protected
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /home [get]
func (a *API) handleHome(w http.ResponseWriter, r *http.Request) {
	err := encode(w, r, http.StatusOK, "Hello, welcome home everyone")
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}
