package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

const sampleCourseData = `{
  "courses": [
    {"code": "01206221", "name": "Applied Probability", "credits": "3(3-0-6)"},
    {
      "code": "01206321",
      "name": "Operations Research I",
      "credits": "3(3-0-6)",
      "prerequisites": ["01206221"]
    }
  ],
  "industrial_engineering_courses": [
    {
      "code": "01206452",
      "name": "Quality Control",
      "credits": "3(3-0-6)",
      "prerequisite_groups": [
        {"courses": ["01206221"], "concurrent_allowed": false},
        {"courses": ["01417168"], "concurrent_allowed": true}
      ]
    }
  ],
  "gen_ed_courses": {
    "wellness": [
      {"code": "01175169", "name": "Badminton for Health", "credits": "1(0-2-1)"}
    ]
  },
  "technical_electives": [
    {"code": "01206441", "name": "Logistics Engineering", "credits": "3(3-0-6)"}
  ]
}`

func TestParseFlattensAllSections(t *testing.T) {
	cat, err := Parse([]byte(sampleCourseData))
	require.NoError(t, err)
	assert.Equal(t, 5, cat.Len())

	entry, ok := cat.Lookup("01206452")
	require.True(t, ok)
	require.Len(t, entry.PrerequisiteGroups, 2)
	assert.Equal(t, []string{"01206221"}, entry.PrerequisiteGroups[0].Courses)
	assert.True(t, entry.PrerequisiteGroups[1].ConcurrentAllowed)

	_, ok = cat.Lookup("01175169")
	assert.True(t, ok, "gen ed courses should be loaded")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"invalid json", `{"courses": [`, appErrors.ErrCatalogUnavailable},
		{"empty document", `{}`, appErrors.ErrCatalogEmpty},
		{"no courses", `{"courses": []}`, appErrors.ErrCatalogEmpty},
		{"entry without code", `{"courses": [{"name": "Nameless", "credits": "3(3-0-6)"}]}`, appErrors.ErrCatalogEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course_data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCourseData), 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cat.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrCatalogUnavailable)
}
