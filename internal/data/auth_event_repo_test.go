package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	apperrors "github.com/partyhub/party-ui-api/internal/errors"
	"github.com/partyhub/party-ui-api/internal/ports"
	"github.com/partyhub/party-ui-api/internal/testutil"
)

func TestAuthEventRepo_RecordAndListRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	events := []ports.AuthEvent{
		{Kind: ports.AuthEventLoginSucceeded, Role: domainauth.RoleHRAdmin, PrincipalID: 1, Detail: "admin"},
		{Kind: ports.AuthEventSessionResolved, Role: domainauth.RolePersonUser, PrincipalID: 7},
		{Kind: ports.AuthEventLogout, Role: domainauth.RolePersonUser, PrincipalID: 7},
	}
	for _, e := range events {
		require.NoError(t, repo.Record(ctx, e))
	}

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, string(ports.AuthEventLogout), got[0].Kind)
	assert.Equal(t, int64(7), got[0].PrincipalID)
	assert.Equal(t, string(ports.AuthEventLoginSucceeded), got[2].Kind)
	assert.Equal(t, "admin", got[2].Detail)
}

func TestAuthEventRepo_RecordRequiresKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuthEventRepo(db)

	err := repo.Record(context.Background(), ports.AuthEvent{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "kind", apperrors.GetField(err))
}

func TestAuthEventRepo_ListRecentLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginFailed}))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAuthEventRepo_CountByKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginFailed}))
	require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginFailed}))
	require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLogout}))

	counts, err := repo.CountByKind(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[string(ports.AuthEventLoginFailed)])
	assert.Equal(t, int64(1), counts[string(ports.AuthEventLogout)])

	// A future cutoff sees nothing.
	counts, err = repo.CountByKind(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestAuthEventRepo_PurgeOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	base := testutil.TestTime()
	tp := NewFixedTimeProvider(base)
	repo := NewAuthEventRepoWithTimeProvider(db, tp)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLogout}))

	tp.AddTime(48 * time.Hour)
	require.NoError(t, repo.Record(ctx, ports.AuthEvent{Kind: ports.AuthEventLoginSucceeded}))

	purged, err := repo.PurgeOlderThan(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, string(ports.AuthEventLoginSucceeded), got[0].Kind)
}
