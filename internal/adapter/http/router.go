package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/adapter/auth"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

// maxBodyBytes bounds request bodies, backups included
const maxBodyBytes = 10 << 20

// SessionProvider resolves the working session of a caller
type SessionProvider interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
}

// Handler serves the JSON API
type Handler struct {
	Sessions    SessionProvider
	Verifier    auth.Verifier // nil: every caller is anonymous
	RequireAuth bool
	Logger      *logrus.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(sessions SessionProvider, verifier auth.Verifier, requireAuth bool, logger *logrus.Logger) *Handler {
	return &Handler{
		Sessions:    sessions,
		Verifier:    verifier,
		RequireAuth: requireAuth,
		Logger:      logger,
	}
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.AuthMiddleware)

	api.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)

	api.HandleFunc("/gold", h.GetGold).Methods(http.MethodGet)
	api.HandleFunc("/gold/{op:add|remove|set}", h.AdjustGold).Methods(http.MethodPost)

	api.HandleFunc("/snapshots", h.ListSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/snapshots", h.SaveSnapshot).Methods(http.MethodPost)
	api.HandleFunc("/snapshots/{id}", h.DeleteSnapshot).Methods(http.MethodDelete)

	api.HandleFunc("/currency/toggle", h.ToggleCurrency).Methods(http.MethodPost)
	api.HandleFunc("/currency", h.SetCurrency).Methods(http.MethodPut)

	api.HandleFunc("/backup", h.ExportBackup).Methods(http.MethodGet)
	api.HandleFunc("/backup", h.ImportBackup).Methods(http.MethodPost)

	api.HandleFunc("/transactions", h.GetTransactions).Methods(http.MethodGet)

	// entity collections last so the fixed paths above win
	api.HandleFunc("/{kind}", h.ListEntities).Methods(http.MethodGet)
	api.HandleFunc("/{kind}", h.AddEntity).Methods(http.MethodPost)
	api.HandleFunc("/{kind}/{id}", h.UpdateEntity).Methods(http.MethodPatch)
	api.HandleFunc("/{kind}/{id}", h.RemoveEntity).Methods(http.MethodDelete)

	return r
}

// AuthMiddleware resolves the caller from the Authorization header.
// Without a header the request is anonymous unless auth is required.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			if h.RequireAuth {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if h.Verifier == nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		userID, err := h.Verifier.Verify(auth.BearerToken(header))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	})
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	userID := auth.UserIDFromContext(r.Context())
	sess, err := h.Sessions.Get(r.Context(), userID)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": userID, "err": err}).Error("Failed to open session")
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return nil, false
	}
	return sess, true
}

// fail writes the status matching err
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.Logger.WithFields(logrus.Fields{
			"path": r.URL.Path,
			"err":  err,
		}).Error("Request failed")
	}
	writeError(w, code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidBackup):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
