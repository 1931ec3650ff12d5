package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T) (*NotificationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewNotificationService(db), mock
}

func TestGetSummary(t *testing.T) {
	svc, mock := newNotificationService(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	now := time.Now()
	mock.ExpectQuery("ORDER BY t.updated_at DESC").
		WithArgs(int64(1), RecentUpdatesLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "updated_at"}).
			AddRow(int64(2), "Buy milk", "pending", now).
			AddRow(int64(1), "Walk dog", "completed", now.Add(-time.Hour)))

	summary, err := svc.GetSummary(1)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.UndoneCount)
	require.Len(t, summary.RecentUpdates, 2)
	assert.Equal(t, "Buy milk", summary.RecentUpdates[0].Title)
}

func TestGetSummary_FallsBackToCreatedAt(t *testing.T) {
	svc, mock := newNotificationService(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("ORDER BY t.updated_at DESC").
		WillReturnError(errors.New(`column "updated_at" does not exist`))

	now := time.Now()
	mock.ExpectQuery("ORDER BY t.created_at DESC").
		WithArgs(int64(1), RecentUpdatesLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "updated_at"}).
			AddRow(int64(3), "Old task", "pending", now))

	summary, err := svc.GetSummary(1)
	require.NoError(t, err)
	require.Len(t, summary.RecentUpdates, 1)
	assert.Equal(t, "Old task", summary.RecentUpdates[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummary_BothQueriesFailing(t *testing.T) {
	svc, mock := newNotificationService(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("ORDER BY t.updated_at DESC").WillReturnError(dbErr)
	mock.ExpectQuery("ORDER BY t.created_at DESC").WillReturnError(dbErr)

	_, err := svc.GetSummary(1)
	assert.ErrorIs(t, err, dbErr)
}
