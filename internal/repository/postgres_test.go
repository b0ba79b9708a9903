package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepositoryFromDB(sqlx.NewDb(db, "postgres")), mock
}

func TestFindNearest(t *testing.T) {
	repo, mock := setupMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "neighbourhood", "room_type", "accommodates", "bedrooms", "price", "url", "distance",
	}).
		AddRow(11, "Sunny room", "Chelsea", "Private room", 2, 1, 120.0, nil, 0.25).
		AddRow(12, nil, "SoHo", "Private room", 3, 1, 180.0, "https://example.com/12", 0.9)

	mock.ExpectQuery(regexp.QuoteMeta("FROM listing_reference")).
		WithArgs(sqlmock.AnyArg(), "Private room", 5).
		WillReturnRows(rows)

	got, err := repo.FindNearest(context.Background(), []float32{0, 1, 0.5}, "Private room", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(11), got[0].ID)
	require.NotNil(t, got[0].Name)
	assert.Equal(t, "Sunny room", *got[0].Name)
	assert.Nil(t, got[0].URL)
	assert.Equal(t, 0.25, got[0].Distance)
	require.NotNil(t, got[1].Price)
	assert.Equal(t, 180.0, *got[1].Price)
	assert.Nil(t, got[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindNearest_ZeroLimitSkipsQuery(t *testing.T) {
	repo, mock := setupMockRepo(t)

	got, err := repo.FindNearest(context.Background(), []float32{1}, "Private room", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindNearest_QueryError(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM listing_reference")).
		WillReturnError(errors.New("relation \"listing_reference\" does not exist"))

	_, err := repo.FindNearest(context.Background(), []float32{1}, "Entire home/apt", 3)
	assert.ErrorContains(t, err, "failed to fetch comparable listings")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountReference(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listing_reference")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.CountReference(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
