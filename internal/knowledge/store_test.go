package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nietlabs/answer-engine/internal/observability"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "course_chunks.json", `[
		{"id":"c1","category":"course","topic":"BTech CSE","text":"Computer science program.","keywords":["btech","cse"]},
		{"id":"c2","category":"course","topic":"BTech IT","text":"Information technology program."}
	]`)
	writeFile(t, dir, "club_chunks.json", `[
		{"id":"k1","category":"club","topic":"Harmonics","text":"Music club."}
	]`)

	store, err := LoadDir(dir, observability.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
	assert.Zero(t, store.Skipped())
	assert.Len(t, store.ByCategory(CategoryCourse), 2)
	assert.Len(t, store.ByCategory(CategoryClub), 1)
	assert.Empty(t, store.ByCategory(CategoryFacility))
}

func TestLoadDir_SingleObjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "overview_chunks.json",
		`{"id":"o1","category":"overview","topic":"About NIET","text":"Established in 2001."}`)

	store, err := LoadDir(dir, observability.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLoadDir_SkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed_chunks.json", `[
		{"id":"ok","category":"facility","topic":"Hostel","text":"Separate hostels."},
		{"id":"no-text","category":"facility","topic":"Empty"},
		{"id":"bad-cat","category":"mystery","topic":"Odd","text":"Something."}
	]`)
	writeFile(t, dir, "broken_chunks.json", `{not json at all`)

	store, err := LoadDir(dir, observability.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.Skipped())
}

func TestLoadDir_NoFiles(t *testing.T) {
	_, err := LoadDir(t.TempDir(), observability.NopLogger())
	assert.Error(t, err)
}

func TestNewStore_FiltersInvalid(t *testing.T) {
	store := NewStore([]Chunk{
		{ID: "a", Category: CategoryCourse, Text: "ok"},
		{ID: "b", Category: CategoryCourse, Text: ""},
		{ID: "c", Category: "nope", Text: "ok"},
	})

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.Skipped())
	require.Len(t, store.All(), 1)
	assert.Equal(t, "a", store.All()[0].ID)
}

func TestChunk_Property(t *testing.T) {
	c := Chunk{Properties: map[string]string{"seats": "420"}}
	assert.Equal(t, "420", c.Property("seats"))
	assert.Equal(t, "", c.Property("fees"))

	var empty Chunk
	assert.Equal(t, "", empty.Property("seats"))
}
