package store

import (
	"context"
	"testing"
	"time"

	"genset/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	gensetColumns  = []string{"id", "name", "created_at", "updated_at"}
	historyColumns = []string{"id", "date", "description", "notes", "genset_id", "created_at", "updated_at"}
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return New(gormDB), mock
}

func TestEscapeLikeValue(t *testing.T) {
	assert.Equal(t, "oli", escapeLikeValue("oli"))
	assert.Equal(t, "a!_b!%c!!", escapeLikeValue("a_b%c!"))
}

func TestStore_ListGensets(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `gensets` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows(gensetColumns).
			AddRow("g1", "Genset A", now, now).
			AddRow("g2", "Genset B", now, now))

	list, err := s.ListGensets(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Genset A", list[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateGenset_Duplicate(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM `gensets`").
		WillReturnRows(sqlmock.NewRows(gensetColumns).AddRow("g1", "Genset A", now, now))

	_, err := s.CreateGenset(context.Background(), "Genset A")
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateGenset(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `gensets`").
		WillReturnRows(sqlmock.NewRows(gensetColumns))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `gensets`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	g, err := s.CreateGenset(context.Background(), "Genset A")
	require.NoError(t, err)
	assert.Equal(t, "Genset A", g.Name)
	assert.NotEmpty(t, g.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindOrCreateGenset_Existing(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM `gensets`").
		WillReturnRows(sqlmock.NewRows(gensetColumns).AddRow("g1", "Genset A", now, now))

	g, created, err := s.FindOrCreateGenset(context.Background(), "Genset A")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "g1", g.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteGenset_InUse(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `histories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := s.DeleteGenset(context.Background(), "g1")
	assert.ErrorIs(t, err, ErrInUse)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteGenset_NotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `histories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `gensets`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.DeleteGenset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListHistories_WithFilter(t *testing.T) {
	s, mock := setupMockStore(t)
	now := time.Now()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT histories.\\* FROM `histories` JOIN gensets ON gensets.id = histories.genset_id WHERE .*histories.description LIKE").
		WithArgs("g1", "%50!%%", "%50!%%", "%50!%%").
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow("h1", day, "Load test 50%", nil, "g1", now, now))
	mock.ExpectQuery("SELECT \\* FROM `gensets`").
		WillReturnRows(sqlmock.NewRows(gensetColumns).AddRow("g1", "Genset A", now, now))

	list, err := s.ListHistories(context.Background(), HistoryFilter{GensetID: "g1", Search: "50%"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Load test 50%", list[0].Description)
	assert.Equal(t, "Genset A", list[0].Genset.Name)
	assert.Equal(t, "2024-01-15", list[0].DateValue().Format(models.DateLayout))
	assert.Nil(t, list[0].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateHistories(t *testing.T) {
	s, mock := setupMockStore(t)
	date := models.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `histories`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	list := []models.History{
		{Date: date, Description: "Perawatan rutin", GensetID: "g1"},
		{Date: date, Description: "Perawatan rutin", GensetID: "g2"},
	}
	require.NoError(t, s.CreateHistories(context.Background(), list))
	require.NoError(t, mock.ExpectationsWereMet())

	// 空批次不访问数据库
	require.NoError(t, s.CreateHistories(context.Background(), nil))
}

func TestStore_UpdateHistory_NotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `histories`").
		WillReturnRows(sqlmock.NewRows(historyColumns))

	_, err := s.UpdateHistory(context.Background(), "missing", HistoryUpdate{Description: "x", GensetID: "g1"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteHistory(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `histories`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `histories`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteHistory(context.Background(), "h1"))
	// 再次删除同一条记录
	assert.ErrorIs(t, s.DeleteHistory(context.Background(), "h1"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
