package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ideapool/backend/internal/store"
	"github.com/ideapool/backend/internal/tokens"
	"github.com/ideapool/backend/internal/validate"
	"github.com/ideapool/backend/pkg/password"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	JWT          string `json:"jwt"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	JWT string `json:"jwt"`
}

var errInvalidRefresh = []validate.FieldError{{Param: "refresh_token", Msg: "Invalid token"}}

// Signup handles POST /users: registers an account and issues a first
// token pair.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, nil)
		return
	}

	in, errs := validate.Signup(req.Email, req.Name, req.Password)

	if len(errs) == 0 {
		_, err := h.users.FindByEmail(r.Context(), in.Email)
		switch {
		case err == nil:
			errs = append(errs, validate.FieldError{Param: "email", Msg: "User already exists"})
		case !errors.Is(err, store.ErrNotFound):
			h.internalError(w, "signup: email lookup failed", err)
			return
		}
	}
	if len(errs) > 0 {
		h.badRequest(w, errs)
		return
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		h.internalError(w, "signup: hashing failed", err)
		return
	}

	userID, err := h.users.Create(r.Context(), in.Email, in.Name, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		// Lost the race against a concurrent signup; the unique constraint
		// is the final authority.
		h.badRequest(w, []validate.FieldError{{Param: "email", Msg: "User already exists"}})
		return
	}
	if err != nil {
		h.internalError(w, "signup: insert failed", err)
		return
	}

	pair, err := h.issueTokenPair(r.Context(), userID)
	if err != nil {
		h.internalError(w, "signup: token issuance failed", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pair)
}

// Login handles POST /access-tokens: verifies credentials and issues a
// fresh token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		// Burn a verify round anyway so the response time matches the
		// wrong-password path.
		password.Verify(req.Password, h.dummyHash)
		h.unauthorized(w)
		return
	}
	if err != nil {
		h.internalError(w, "login: email lookup failed", err)
		return
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		h.unauthorized(w)
		return
	}

	pair, err := h.issueTokenPair(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, "login: token issuance failed", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pair)
}

// RefreshAccessToken handles POST /access-tokens/refresh: exchanges a
// known refresh token for a new access token. The refresh token itself is
// not rotated.
func (h *Handler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		h.badRequest(w, errInvalidRefresh)
		return
	}

	userID, ok, err := h.sessions.Get(r.Context(), req.RefreshToken)
	if err != nil {
		h.internalError(w, "refresh: session lookup failed", err)
		return
	}
	if !ok {
		h.badRequest(w, errInvalidRefresh)
		return
	}

	// The account may have gone away while the session lived on.
	if _, err := h.users.FindByID(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.badRequest(w, errInvalidRefresh)
			return
		}
		h.internalError(w, "refresh: user lookup failed", err)
		return
	}

	access, err := h.issuer.IssueAccess(userID)
	if err != nil {
		h.internalError(w, "refresh: token issuance failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, accessTokenResponse{JWT: access})
}

// Logout handles DELETE /access-tokens: revokes the refresh token named
// in the body. Requires a valid access token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		h.badRequest(w, errInvalidRefresh)
		return
	}

	_, ok, err := h.sessions.Get(r.Context(), req.RefreshToken)
	if err != nil {
		h.internalError(w, "logout: session lookup failed", err)
		return
	}
	if !ok {
		h.badRequest(w, errInvalidRefresh)
		return
	}

	if err := h.sessions.Delete(r.Context(), req.RefreshToken); err != nil {
		h.internalError(w, "logout: session delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) issueTokenPair(ctx context.Context, userID int64) (*tokenPairResponse, error) {
	access, err := h.issuer.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := tokens.IssueRefresh()
	if err != nil {
		return nil, err
	}
	if err := h.sessions.Put(ctx, refresh, userID); err != nil {
		return nil, err
	}
	return &tokenPairResponse{JWT: access, RefreshToken: refresh}, nil
}
