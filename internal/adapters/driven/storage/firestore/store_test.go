package firestore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		want        error
		recoverable bool
	}{
		{name: "not found", err: status.Error(codes.NotFound, "no doc"), want: domain.ErrNotFound},
		{name: "permission denied", err: status.Error(codes.PermissionDenied, "rules"), want: domain.ErrPermissionDenied, recoverable: true},
		{name: "unauthenticated", err: status.Error(codes.Unauthenticated, "token"), want: domain.ErrPermissionDenied, recoverable: true},
		{name: "failed precondition", err: status.Error(codes.FailedPrecondition, "index"), want: domain.ErrSchemaMissing, recoverable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.Equal(t, tt.recoverable, domain.IsRecoverableRemote(got))
		})
	}
}

func TestClassifyError_OtherErrorsAreHard(t *testing.T) {
	for _, err := range []error{
		status.Error(codes.Unavailable, "down"),
		status.Error(codes.Internal, "boom"),
		errors.New("plain"),
	} {
		got := classifyError("saving report", err)
		assert.False(t, domain.IsRecoverableRemote(got))
		assert.ErrorIs(t, got, err)
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{ProjectID: "p"}.withDefaults()
	assert.Equal(t, DefaultCollection, cfg.Collection)
	assert.Equal(t, "inspection_reports_users", cfg.UsersCollection)

	custom := Config{Collection: "reports", UsersCollection: "accounts"}.withDefaults()
	assert.Equal(t, "reports", custom.Collection)
	assert.Equal(t, "accounts", custom.UsersCollection)
}

func TestNewStore_RequiresProject(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportDocMapping(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := toReportDoc(&domain.ReportRecord{ID: "r1", ShortID: "k", UserID: "u", Data: []byte(`{"a":1}`)}, now)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.Equal(t, `{"a":1}`, doc.Data)

	rec := fromReportDoc(doc)
	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, "k", rec.ShortID)
	assert.Equal(t, "u", rec.UserID)
	assert.Equal(t, []byte(`{"a":1}`), rec.Data)

	created := now.Add(-time.Hour)
	kept := toReportDoc(&domain.ReportRecord{ID: "r1", CreatedAt: created}, now)
	assert.Equal(t, created, kept.CreatedAt)
}

func TestEmailKey(t *testing.T) {
	assert.Equal(t, "a@b.com", emailKey("  A@B.com "))
}

// TestStore_Emulator exercises the store against a local Firestore emulator.
func TestStore_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	store, err := NewStore(ctx, Config{ProjectID: "walkthrough-test", Collection: "reports_" + time.Now().Format("150405.000000")})
	require.NoError(t, err)
	defer store.Close()

	reports := store.ReportStore()
	_, err = reports.Save(ctx, &domain.ReportRecord{ID: "r1", ShortID: "aB3dE6gH9", Data: []byte(`{}`)})
	require.NoError(t, err)

	got, err := reports.GetByShortID(ctx, "aB3dE6gH9")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)

	_, err = reports.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, reports.Delete(ctx, "r1"))
	_, err = reports.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users := store.UserStore()
	creds := domain.UserCredentials{User: domain.User{ID: "u1", Email: "a@b.com"}, PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, creds))
	assert.ErrorIs(t, users.Create(ctx, creds), domain.ErrAlreadyExists)
}
