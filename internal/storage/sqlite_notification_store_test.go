package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/designpatterns/internal/storage"
)

func TestSQLiteNotificationStore(t *testing.T) {
	db, fresh, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, fresh)

	store := storage.NewSQLiteNotificationStore(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	t.Run("log and list", func(t *testing.T) {
		entry := storage.NotificationLogEntry{
			MessageID: "3f1c2a9e-0000-4000-8000-000000000001",
			EventType: "saved",
			Provider:  "smtp",
			Recipient: "test@test.com",
			Subject:   "Editor Notification - saved",
			Status:    storage.StatusSent,
			CreatedAt: base,
		}
		require.NoError(t, store.LogNotification(ctx, entry))

		list, err := store.ListNotifications(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)

		got := list[0]
		assert.NotZero(t, got.ID)
		assert.Equal(t, entry.MessageID, got.MessageID)
		assert.Equal(t, entry.EventType, got.EventType)
		assert.Equal(t, entry.Provider, got.Provider)
		assert.Equal(t, entry.Recipient, got.Recipient)
		assert.Equal(t, entry.Subject, got.Subject)
		assert.Equal(t, entry.Status, got.Status)
		assert.Empty(t, got.ErrorMsg)
	})

	t.Run("failed status", func(t *testing.T) {
		entry := storage.NotificationLogEntry{
			EventType: "open",
			Provider:  "smtp",
			Status:    storage.StatusFailed,
			ErrorMsg:  "connection refused",
			CreatedAt: base.Add(time.Minute),
		}
		require.NoError(t, store.LogNotification(ctx, entry))

		list, err := store.ListNotifications(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 2)
		// Latest entry is first.
		assert.Equal(t, storage.StatusFailed, list[0].Status)
		assert.Equal(t, "connection refused", list[0].ErrorMsg)
	})

	t.Run("limit", func(t *testing.T) {
		list, err := store.ListNotifications(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("default limit", func(t *testing.T) {
		list, err := store.ListNotifications(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestNewSQLiteDB_ReopenIsNotFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")

	db, fresh, err := storage.NewSQLiteDB(path)
	require.NoError(t, err)
	assert.True(t, fresh)
	require.NoError(t, db.Close())

	db, fresh, err = storage.NewSQLiteDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.False(t, fresh)
}
