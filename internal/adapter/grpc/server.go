package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/finance-dashboard/internal/adapter/auth"
	financev1 "github.com/simaogato/finance-dashboard/internal/adapter/grpc/finance/v1"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

// SessionProvider resolves the working session of a caller
type SessionProvider interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
}

// Server implements the DashboardService gRPC server
type Server struct {
	financev1.UnimplementedDashboardServiceServer

	Sessions SessionProvider
	Logger   *logrus.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(sessions SessionProvider, logger *logrus.Logger) *Server {
	return &Server{
		Sessions: sessions,
		Logger:   logger,
	}
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, req *financev1.GetDashboardRequest) (*financev1.GetDashboardResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	d, err := sess.Dashboard.GetDashboard(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &financev1.GetDashboardResponse{
		Dashboard:   d,
		GeneratedAt: timestamppb.New(sess.Dashboard.Now()),
	}, nil
}

// MutateEntity handles the MutateEntity RPC
func (s *Server) MutateEntity(ctx context.Context, req *financev1.MutateEntityRequest) (*financev1.MutateEntityResponse, error) {
	kind, err := domain.ParseEntityKind(req.Kind)
	if err != nil {
		return nil, mapError(err)
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	resp := &financev1.MutateEntityResponse{}
	switch strings.ToLower(req.Op) {
	case financev1.OpAdd:
		created, err := sess.Entities.Add(ctx, kind)
		if err != nil {
			return nil, mapError(err)
		}
		data, err := json.Marshal(created)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "failed to encode entity: %v", err)
		}
		resp.Entity = data
	case financev1.OpUpdate:
		if req.ID == "" {
			return nil, status.Error(codes.InvalidArgument, "id is required")
		}
		if err := sess.Entities.Update(ctx, kind, domain.ID(req.ID), req.Field, req.Value.String()); err != nil {
			return nil, mapError(err)
		}
	case financev1.OpRemove:
		if req.ID == "" {
			return nil, status.Error(codes.InvalidArgument, "id is required")
		}
		if err := sess.Entities.Remove(ctx, kind, domain.ID(req.ID)); err != nil {
			return nil, mapError(err)
		}
	default:
		return nil, status.Errorf(codes.InvalidArgument, "invalid op %q", req.Op)
	}

	metrics, err := sess.Dashboard.GetMetrics(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	resp.Metrics = metrics
	return resp, nil
}

// AdjustGold handles the AdjustGold RPC
func (s *Server) AdjustGold(ctx context.Context, req *financev1.AdjustGoldRequest) (*financev1.AdjustGoldResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	var apply func(context.Context, string) (decimal.Decimal, error)
	switch strings.ToLower(req.Op) {
	case "add":
		apply = sess.Investment.AddGrams
	case "remove":
		apply = sess.Investment.RemoveGrams
	case "set":
		apply = sess.Investment.SetGrams
	default:
		return nil, status.Errorf(codes.InvalidArgument, "invalid op %q", req.Op)
	}

	grams, err := apply(ctx, req.Grams.String())
	if err != nil {
		return nil, mapError(err)
	}
	return &financev1.AdjustGoldResponse{GoldGrams: grams}, nil
}

// SaveSnapshot handles the SaveSnapshot RPC
func (s *Server) SaveSnapshot(ctx context.Context, req *financev1.SaveSnapshotRequest) (*financev1.SaveSnapshotResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := sess.Snapshots.Save(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &financev1.SaveSnapshotResponse{
		Snapshot:  snap,
		CreatedAt: timestamppb.New(snap.Date),
	}, nil
}

// DeleteSnapshot handles the DeleteSnapshot RPC
func (s *Server) DeleteSnapshot(ctx context.Context, req *financev1.DeleteSnapshotRequest) (*financev1.DeleteSnapshotResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	if err := sess.Snapshots.Delete(ctx, domain.ID(req.ID)); err != nil {
		return nil, mapError(err)
	}
	history, err := sess.Snapshots.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &financev1.DeleteSnapshotResponse{Remaining: len(history)}, nil
}

// ToggleCurrency handles the ToggleCurrency RPC
func (s *Server) ToggleCurrency(ctx context.Context, req *financev1.ToggleCurrencyRequest) (*financev1.ToggleCurrencyResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	var c domain.Currency
	if req.Code != "" {
		c, err = sess.Currency.Set(ctx, req.Code)
	} else {
		c, err = sess.Currency.Toggle(ctx)
	}
	if err != nil {
		return nil, mapError(err)
	}

	return &financev1.ToggleCurrencyResponse{Currency: c}, nil
}

// ExportBackup handles the ExportBackup RPC
func (s *Server) ExportBackup(ctx context.Context, req *financev1.ExportBackupRequest) (*financev1.ExportBackupResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := sess.Backup.Export(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &financev1.ExportBackupResponse{Document: doc}, nil
}

// ImportBackup handles the ImportBackup RPC
func (s *Server) ImportBackup(ctx context.Context, req *financev1.ImportBackupRequest) (*financev1.ImportBackupResponse, error) {
	if len(req.Document) == 0 {
		return nil, status.Error(codes.InvalidArgument, "document is required")
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	st, err := sess.Backup.Import(ctx, req.Document)
	if err != nil {
		return nil, mapError(err)
	}

	return &financev1.ImportBackupResponse{
		Cards:   len(st.Cards),
		Funds:   len(st.Funds),
		Others:  len(st.Others),
		History: len(st.History),
	}, nil
}

func (s *Server) session(ctx context.Context) (*session.Session, error) {
	userID := auth.UserIDFromContext(ctx)
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "err": err}).Error("Failed to open session")
		return nil, mapError(err)
	}
	return sess, nil
}

// mapError maps domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidBackup):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	default:
		return status.Errorf(codes.Internal, "%s", err.Error())
	}
}
