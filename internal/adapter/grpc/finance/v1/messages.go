package financev1

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
)

// Entity mutation operations
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Dashboard   *dashboard.Dashboard   `json:"dashboard"`
	GeneratedAt *timestamppb.Timestamp `json:"generated_at"`
}

// MutateEntityRequest adds, updates or removes one entity of a collection.
// ID is ignored for add; Field and Value are only used by update.
type MutateEntityRequest struct {
	Kind  string            `json:"kind"`
	Op    string            `json:"op"`
	ID    string            `json:"id,omitempty"`
	Field string            `json:"field,omitempty"`
	Value domain.FieldValue `json:"value,omitempty"`
}

type MutateEntityResponse struct {
	Entity  json.RawMessage   `json:"entity,omitempty"` // set for add
	Metrics *dashboard.Bundle `json:"metrics"`
}

type AdjustGoldRequest struct {
	Op    string            `json:"op"` // "add", "remove" or "set"
	Grams domain.FieldValue `json:"grams"`
}

type AdjustGoldResponse struct {
	GoldGrams decimal.Decimal `json:"gold_grams"`
}

type SaveSnapshotRequest struct{}

type SaveSnapshotResponse struct {
	Snapshot  *domain.Snapshot       `json:"snapshot"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type DeleteSnapshotRequest struct {
	ID string `json:"id"`
}

type DeleteSnapshotResponse struct {
	Remaining int `json:"remaining"`
}

// ToggleCurrencyRequest cycles the currency, or selects Code when it is set
type ToggleCurrencyRequest struct {
	Code string `json:"code,omitempty"`
}

type ToggleCurrencyResponse struct {
	Currency domain.Currency `json:"currency"`
}

type ExportBackupRequest struct{}

type ExportBackupResponse struct {
	Document json.RawMessage `json:"document"`
}

type ImportBackupRequest struct {
	Document json.RawMessage `json:"document"`
}

type ImportBackupResponse struct {
	Cards   int `json:"cards"`
	Funds   int `json:"funds"`
	Others  int `json:"others"`
	History int `json:"history"`
}
