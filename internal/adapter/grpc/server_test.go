package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/finance-dashboard/internal/adapter/auth"
	financev1 "github.com/simaogato/finance-dashboard/internal/adapter/grpc/finance/v1"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/usecase/seeder"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

const testSecret = "grpc-test-secret"

// memLocal is an in-memory LocalStateRepository
type memLocal struct {
	mu sync.Mutex
	st domain.State
}

func (l *memLocal) Load(ctx context.Context) (domain.State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.st.Clone(), nil
}

func (l *memLocal) Save(ctx context.Context, st domain.State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.st = st.Clone()
	return nil
}

func newManager() *session.Manager {
	var mu sync.Mutex
	locals := map[string]*memLocal{}
	return session.NewManager(session.Config{
		Local: func(userID string) domain.LocalStateRepository {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := locals[userID]; !ok {
				locals[userID] = &memLocal{st: seeder.DefaultState()}
			}
			return locals[userID]
		},
		Logger: logging.Discard(),
	})
}

func startServer(t *testing.T, requireAuth bool) financev1.DashboardServiceClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpclib.NewServer(
		grpclib.UnaryInterceptor(AuthInterceptor(auth.NewJWTVerifier(testSecret), requireAuth)),
	)
	financev1.RegisterDashboardServiceServer(srv, NewServer(newManager(), logging.Discard()))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return financev1.NewDashboardServiceClient(conn)
}

func withUser(t *testing.T, userID string) context.Context {
	t.Helper()
	token, err := auth.NewJWTVerifier(testSecret).Issue(userID, time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "error should be a gRPC status")
	assert.Equal(t, code, st.Code(), st.Message())
}

func TestServer_GetDashboard(t *testing.T) {
	client := startServer(t, false)

	resp, err := client.GetDashboard(context.Background(), &financev1.GetDashboardRequest{})
	require.NoError(t, err)

	require.NotNil(t, resp.Dashboard)
	assert.Equal(t, "18700", resp.Dashboard.Metrics.OverallNet.String())
	assert.Equal(t, "23450", resp.Dashboard.Metrics.TotalAssets.String())
	assert.Len(t, resp.Dashboard.State.Cards, 3)
	assert.Equal(t, domain.CurrencyTRY, resp.Dashboard.State.Currency)
	assert.NotNil(t, resp.GeneratedAt)
}

func TestServer_MutateEntity(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	added, err := client.MutateEntity(ctx, &financev1.MutateEntityRequest{Kind: "funds", Op: financev1.OpAdd})
	require.NoError(t, err)

	var fund domain.Fund
	require.NoError(t, json.Unmarshal(added.Entity, &fund))
	assert.Equal(t, "New Account", fund.Name)
	assert.NotEmpty(t, fund.ID)

	updated, err := client.MutateEntity(ctx, &financev1.MutateEntityRequest{
		Kind: "funds", Op: financev1.OpUpdate, ID: string(fund.ID), Field: "amount", Value: "1000",
	})
	require.NoError(t, err)
	assert.Equal(t, "24450", updated.Metrics.TotalAssets.String())

	removed, err := client.MutateEntity(ctx, &financev1.MutateEntityRequest{
		Kind: "funds", Op: financev1.OpRemove, ID: string(fund.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "23450", removed.Metrics.TotalAssets.String())
}

func TestServer_MutateEntity_Errors(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *financev1.MutateEntityRequest
	}{
		{"unknown kind", &financev1.MutateEntityRequest{Kind: "loans", Op: financev1.OpAdd}},
		{"unknown op", &financev1.MutateEntityRequest{Kind: "cards", Op: "rename"}},
		{"unknown field", &financev1.MutateEntityRequest{Kind: "cards", Op: financev1.OpUpdate, ID: "x", Field: "color", Value: "red"}},
		{"update without id", &financev1.MutateEntityRequest{Kind: "cards", Op: financev1.OpUpdate, Field: "name"}},
		{"remove without id", &financev1.MutateEntityRequest{Kind: "cards", Op: financev1.OpRemove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.MutateEntity(ctx, tt.req)
			requireCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestServer_AdjustGold(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	resp, err := client.AdjustGold(ctx, &financev1.AdjustGoldRequest{Op: "add", Grams: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, "12.5", resp.GoldGrams.String())

	resp, err = client.AdjustGold(ctx, &financev1.AdjustGoldRequest{Op: "remove", Grams: "20"})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.GoldGrams.String())

	_, err = client.AdjustGold(ctx, &financev1.AdjustGoldRequest{Op: "melt", Grams: "1"})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_Snapshots(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	saved, err := client.SaveSnapshot(ctx, &financev1.SaveSnapshotRequest{})
	require.NoError(t, err)
	require.NotNil(t, saved.Snapshot)
	assert.Equal(t, "18700", saved.Snapshot.OverallNet.String())
	assert.Equal(t, saved.Snapshot.Date.Unix(), saved.CreatedAt.AsTime().Unix())

	dash, err := client.GetDashboard(ctx, &financev1.GetDashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Dashboard.Metrics.SnapshotCount)

	deleted, err := client.DeleteSnapshot(ctx, &financev1.DeleteSnapshotRequest{ID: string(saved.Snapshot.ID)})
	require.NoError(t, err)
	assert.Equal(t, 0, deleted.Remaining)

	_, err = client.DeleteSnapshot(ctx, &financev1.DeleteSnapshotRequest{})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_ToggleCurrency(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	resp, err := client.ToggleCurrency(ctx, &financev1.ToggleCurrencyRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyUAH, resp.Currency)

	resp, err = client.ToggleCurrency(ctx, &financev1.ToggleCurrencyRequest{Code: "USD"})
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyUSD, resp.Currency)

	_, err = client.ToggleCurrency(ctx, &financev1.ToggleCurrencyRequest{Code: "GBP"})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_Backup(t *testing.T) {
	client := startServer(t, false)
	ctx := context.Background()

	exported, err := client.ExportBackup(ctx, &financev1.ExportBackupRequest{})
	require.NoError(t, err)
	assert.Contains(t, string(exported.Document), `"goldGrams"`)

	// import into another user's session
	userCtx := withUser(t, "user-7")
	imported, err := client.ImportBackup(userCtx, &financev1.ImportBackupRequest{Document: exported.Document})
	require.NoError(t, err)
	assert.Equal(t, 3, imported.Cards)
	assert.Equal(t, 3, imported.Funds)
	assert.Equal(t, 2, imported.Others)
	assert.Equal(t, 0, imported.History)

	_, err = client.ImportBackup(ctx, &financev1.ImportBackupRequest{Document: json.RawMessage(`{"cards": []}`)})
	requireCode(t, err, codes.InvalidArgument)

	_, err = client.ImportBackup(ctx, &financev1.ImportBackupRequest{})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_SessionsAreIsolated(t *testing.T) {
	client := startServer(t, true)

	_, err := client.GetDashboard(context.Background(), &financev1.GetDashboardRequest{})
	requireCode(t, err, codes.Unauthenticated)

	alice := withUser(t, "alice")
	bob := withUser(t, "bob")

	_, err = client.ToggleCurrency(alice, &financev1.ToggleCurrencyRequest{Code: "EUR"})
	require.NoError(t, err)

	aliceDash, err := client.GetDashboard(alice, &financev1.GetDashboardRequest{})
	require.NoError(t, err)
	bobDash, err := client.GetDashboard(bob, &financev1.GetDashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.CurrencyEUR, aliceDash.Dashboard.State.Currency)
	assert.Equal(t, domain.CurrencyTRY, bobDash.Dashboard.State.Currency)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("wrap: %w", domain.ErrUnknownKind), codes.InvalidArgument},
		{fmt.Errorf("wrap: %w", domain.ErrUnknownField), codes.InvalidArgument},
		{domain.ErrUnsupportedCurrency, codes.InvalidArgument},
		{domain.ErrInvalidBackup, codes.InvalidArgument},
		{fmt.Errorf("lookup: %w", domain.ErrRecordNotFound), codes.NotFound},
		{context.Canceled, codes.Canceled},
		{errors.New("disk on fire"), codes.Internal},
		{status.Error(codes.PermissionDenied, "nope"), codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			requireCode(t, mapError(tt.err), tt.code)
		})
	}

	assert.NoError(t, mapError(nil))
}
