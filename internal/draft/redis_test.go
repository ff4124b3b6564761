package draft

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), "tester")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not a url", "u")
	assert.Error(t, err)
}

func TestDraftRoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	d, err := store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.True(t, d.Empty())

	want := journal.Draft{Title: "Bus ride", Content: "Thinking about the weekend.", UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, store.SaveDraft(ctx, want))
	assert.True(t, mr.Exists("voicejournal:draft:tester"))

	got, err := store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, store.ClearDraft(ctx))
	got, err = store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestDraftExpires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, journal.Draft{Content: "fleeting"}))
	mr.FastForward(defaultTTL + time.Second)

	got, err := store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestDraftsAreScopedPerUser(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, store.SaveDraft(ctx, journal.Draft{Content: "mine"}))

	other, err := NewRedisStore(ctx, "redis://"+mr.Addr(), "someone-else")
	require.NoError(t, err)
	defer other.Close()

	got, err := other.LoadDraft(ctx)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestCorruptDraft(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("voicejournal:draft:tester", "{not json"))

	_, err := store.LoadDraft(context.Background())
	assert.Error(t, err)
}

func TestServiceWithRedisDrafts(t *testing.T) {
	store, _ := setupTestRedis(t)
	svc := journal.NewService(nil, nil, journal.WithDrafts(store))
	ctx := context.Background()

	d, err := svc.AppendDraft(ctx, "um so i went to the store")
	require.NoError(t, err)
	assert.Equal(t, "Um, so i went to the store.", d.Content)

	got, err := store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.Content, got.Content)
}
