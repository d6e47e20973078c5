package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideapool/backend/internal/sessions"
	"github.com/ideapool/backend/internal/store"
	"github.com/ideapool/backend/internal/tokens"
	"github.com/ideapool/backend/internal/validate"
	"github.com/ideapool/backend/pkg/password"
)

// Handler holds the injected collaborators for every route. Lifecycle of
// the underlying connections is owned by the process bootstrap.
type Handler struct {
	users    *store.UserStore
	ideas    *store.IdeaStore
	sessions *sessions.Cache
	issuer   *tokens.Issuer
	logger   *zap.SugaredLogger

	// dummyHash absorbs a verify round for unknown emails so login timing
	// does not reveal whether an account exists.
	dummyHash string
}

func New(users *store.UserStore, ideas *store.IdeaStore, sessions *sessions.Cache, issuer *tokens.Issuer, logger *zap.SugaredLogger) (*Handler, error) {
	dummy, err := password.Hash("no-such-account")
	if err != nil {
		return nil, err
	}
	return &Handler{
		users:     users,
		ideas:     ideas,
		sessions:  sessions,
		issuer:    issuer,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Root answers the unauthenticated API index.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Idea Pool API"})
}

type errorResponse struct {
	Msg    string                `json:"msg"`
	Errors []validate.FieldError `json:"errors,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorw("failed to encode response", "err", err)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, errs []validate.FieldError) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Msg: "Bad Request", Errors: errs})
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusUnauthorized, errorResponse{Msg: "Unauthorized"})
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{Msg: "Not Found"})
}

// internalError hides the cause from the client; full detail goes to the
// server log only.
func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Errorw(msg, "err", err)
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: "Internal Server Error"})
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
