package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/models"
)

func testEntries() []models.CourseCatalogEntry {
	return []models.CourseCatalogEntry{
		{Code: "01206221", Name: "Applied Probability", Credits: "3(3-0-6)"},
		{Code: "01206321", Name: "Operations Research I", Credits: "3(3-0-6)", Prerequisites: []string{"01206221"}},
		{Code: "01206322", Name: "Operations Research II", Credits: "3(3-0-6)", Prerequisites: []string{"01206321"}},
		{Code: "01417167", Name: "Engineering Mathematics I", Credits: "3(3-0-6)"},
	}
}

func TestNewSkipsEntriesWithoutCode(t *testing.T) {
	cat := New([]models.CourseCatalogEntry{
		{Code: "01206221", Name: "Applied Probability"},
		{Code: "", Name: "Orphan"},
	})

	assert.Equal(t, 1, cat.Len())
	_, ok := cat.Lookup("")
	assert.False(t, ok)
}

func TestNewLaterDuplicateWins(t *testing.T) {
	cat := New([]models.CourseCatalogEntry{
		{Code: "01206221", Name: "Old Name"},
		{Code: "01206221", Name: "New Name"},
	})

	entry, ok := cat.Lookup("01206221")
	require.True(t, ok)
	assert.Equal(t, "New Name", entry.Name)
	assert.Equal(t, 1, cat.Len())
}

func TestLookup(t *testing.T) {
	cat := New(testEntries())

	entry, ok := cat.Lookup("01206321")
	require.True(t, ok)
	assert.Equal(t, "Operations Research I", entry.Name)
	assert.Equal(t, []string{"01206221"}, entry.Prerequisites)

	_, ok = cat.Lookup("99999999")
	assert.False(t, ok)
}

func TestListOrdersByCode(t *testing.T) {
	cat := New(testEntries())

	entries, total := cat.List(models.CourseFilter{})
	require.Equal(t, 4, total)
	require.Len(t, entries, 4)
	assert.Equal(t, "01206221", entries[0].Code)
	assert.Equal(t, "01417167", entries[3].Code)
}

func TestListSearchMatchesCodeAndName(t *testing.T) {
	cat := New(testEntries())

	byCode, total := cat.List(models.CourseFilter{Search: "012063"})
	assert.Equal(t, 2, total)
	assert.Len(t, byCode, 2)

	byName, total := cat.List(models.CourseFilter{Search: "operations research"})
	assert.Equal(t, 2, total)
	assert.Len(t, byName, 2)

	none, total := cat.List(models.CourseFilter{Search: "quantum"})
	assert.Equal(t, 0, total)
	assert.Empty(t, none)
}

func TestListPagination(t *testing.T) {
	cat := New(testEntries())

	first, total := cat.List(models.CourseFilter{Page: 1, PageSize: 3})
	assert.Equal(t, 4, total)
	require.Len(t, first, 3)
	assert.Equal(t, "01206221", first[0].Code)

	second, total := cat.List(models.CourseFilter{Page: 2, PageSize: 3})
	assert.Equal(t, 4, total)
	require.Len(t, second, 1)
	assert.Equal(t, "01417167", second[0].Code)

	beyond, total := cat.List(models.CourseFilter{Page: 5, PageSize: 3})
	assert.Equal(t, 4, total)
	assert.Empty(t, beyond)

	// Page zero is treated as the first page.
	clamped, _ := cat.List(models.CourseFilter{Page: 0, PageSize: 2})
	require.Len(t, clamped, 2)
	assert.Equal(t, "01206221", clamped[0].Code)
}
