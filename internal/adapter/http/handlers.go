package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// GetDashboard returns the state with its derived metrics
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	d, err := sess.Dashboard.GetDashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListEntities returns one collection
func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseEntityKind(mux.Vars(r)["kind"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	items, err := sess.Entities.List(r.Context(), kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddEntity appends a record with its creation defaults
func (h *Handler) AddEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseEntityKind(mux.Vars(r)["kind"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	created, err := sess.Entities.Add(r.Context(), kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateEntityRequest struct {
	Field string            `json:"field"`
	Value domain.FieldValue `json:"value"`
}

// UpdateEntity sets one field of a record and returns the new metrics
func (h *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := domain.ParseEntityKind(vars["kind"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req updateEntityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.Entities.Update(r.Context(), kind, domain.ID(vars["id"]), req.Field, req.Value.String()); err != nil {
		h.fail(w, r, err)
		return
	}

	metrics, err := sess.Dashboard.GetMetrics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// RemoveEntity deletes a record; an unknown id is not an error
func (h *Handler) RemoveEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := domain.ParseEntityKind(vars["kind"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.Entities.Remove(r.Context(), kind, domain.ID(vars["id"])); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGold returns the valued gold holding
func (h *Handler) GetGold(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	holding, err := sess.Investment.GetHolding(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, holding)
}

type goldRequest struct {
	Grams domain.FieldValue `json:"grams"`
}

// AdjustGold adds, removes or sets grams; the holding never goes below zero
func (h *Handler) AdjustGold(w http.ResponseWriter, r *http.Request) {
	var req goldRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var (
		grams decimal.Decimal
		err   error
	)
	switch mux.Vars(r)["op"] {
	case "add":
		grams, err = sess.Investment.AddGrams(r.Context(), req.Grams.String())
	case "remove":
		grams, err = sess.Investment.RemoveGrams(r.Context(), req.Grams.String())
	default:
		grams, err = sess.Investment.SetGrams(r.Context(), req.Grams.String())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"goldGrams": grams})
}

// ListSnapshots returns the history ordered by date ascending
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	history, err := sess.Snapshots.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// SaveSnapshot records the current headline metrics
func (h *Handler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := sess.Snapshots.Save(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// DeleteSnapshot removes one snapshot
func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.Snapshots.Delete(r.Context(), domain.ID(mux.Vars(r)["id"])); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleCurrency moves to the next supported currency
func (h *Handler) ToggleCurrency(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := sess.Currency.Toggle(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Currency{"currency": c})
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

// SetCurrency selects a supported currency
func (h *Handler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := sess.Currency.Set(r.Context(), req.Currency)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Currency{"currency": c})
}

// ExportBackup downloads the backup document
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	doc, err := sess.Backup.Export(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="finance-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// ImportBackup replaces the whole state with the posted document
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	st, err := sess.Backup.Import(r.Context(), doc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"cards":   len(st.Cards),
		"funds":   len(st.Funds),
		"others":  len(st.Others),
		"history": len(st.History),
	})
}

// GetTransactions returns the display-only bank transactions with their summary
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	report, err := sess.Expenses.GetReport(r.Context(), sess.UserID)
	if err != nil {
		h.Logger.WithError(err).Warn("Bank feed unavailable")
		writeError(w, http.StatusBadGateway, "bank feed unavailable")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
