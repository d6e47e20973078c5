package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/ideapool/backend/internal/middleware"
	"github.com/ideapool/backend/internal/store"
)

type currentUserResponse struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// CurrentUser handles GET /me.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		// The token outlived the account.
		h.unauthorized(w)
		return
	}
	if err != nil {
		h.internalError(w, "me: user lookup failed", err)
		return
	}

	h.writeJSON(w, http.StatusOK, currentUserResponse{
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: gravatarURL(user.Email),
	})
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}
