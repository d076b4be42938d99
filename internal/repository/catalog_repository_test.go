package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/models"
)

func newCatalogMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCatalogRepositoryLoadAll(t *testing.T) {
	db, mock, cleanup := newCatalogMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery("SELECT code, name, credits FROM courses").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "credits"}).
			AddRow("01206221", "Engineering Statistics I", "3(3-0-6)").
			AddRow("01206321", "Operations Research I", "3(3-0-6)").
			AddRow("01206452", "Quality Control", "3(3-0-6)"))

	mock.ExpectQuery("SELECT course_code, requires_code FROM course_prerequisites").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "requires_code"}).
			AddRow("01206321", "01206221"))

	mock.ExpectQuery("SELECT course_code, requires_code FROM course_corequisites").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "requires_code"}).
			AddRow("01206321", "01206322"))

	mock.ExpectQuery("SELECT course_code, group_index, requires_code, concurrent_allowed").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "group_index", "requires_code", "concurrent_allowed"}).
			AddRow("01206452", 0, "01206221", false).
			AddRow("01206452", 0, "01206322", false).
			AddRow("01206452", 1, "01206361", true))

	entries, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byCode := make(map[string]models.CourseCatalogEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}

	assert.Empty(t, byCode["01206221"].Prerequisites)
	assert.Equal(t, []string{"01206221"}, byCode["01206321"].Prerequisites)
	assert.Equal(t, []string{"01206322"}, byCode["01206321"].Corequisites)

	groups := byCode["01206452"].PrerequisiteGroups
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"01206221", "01206322"}, groups[0].Courses)
	assert.False(t, groups[0].ConcurrentAllowed)
	assert.Equal(t, []string{"01206361"}, groups[1].Courses)
	assert.True(t, groups[1].ConcurrentAllowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryLoadAllQueryError(t *testing.T) {
	db, mock, cleanup := newCatalogMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery("SELECT code, name, credits FROM courses").
		WillReturnError(assert.AnError)

	_, err := repo.LoadAll(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
