package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"questions": ["ما هي فصائل الدم؟", "أنواع الدم"], "answer": "A و B و AB و O", "source": "وزارة الصحة"},
  {"questions": ["هل أستطيع التبرع وأنا صائم؟"], "answer": "يفضل التبرع بعد الإفطار.", "source": "KB"}
]`

const sampleYAML = `
- questions:
    - ما هي فصائل الدم؟
  answer: A و B و AB و O
  source: وزارة الصحة
`

func TestParseEntries(t *testing.T) {
	entries, err := ParseEntries([]byte(sampleJSON), ".json")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"ما هي فصائل الدم؟", "أنواع الدم"}, entries[0].Questions)
	assert.Equal(t, "وزارة الصحة", entries[0].Source)

	entries, err = ParseEntries([]byte(sampleYAML), ".YML")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A و B و AB و O", entries[0].Answer)

	_, err = ParseEntries([]byte("{not json"), ".json")
	assert.Error(t, err)
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = NewFileSource("").Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	entries, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestParseS3URL(t *testing.T) {
	bucket, key, ok := parseS3URL("s3://zomra-kb/prod/kb.yaml")
	assert.True(t, ok)
	assert.Equal(t, "zomra-kb", bucket)
	assert.Equal(t, "prod/kb.yaml", key)

	for _, bad := range []string{"kb.json", "s3://", "s3://bucket", "s3://bucket/"} {
		_, _, ok := parseS3URL(bad)
		assert.False(t, ok, bad)
	}
}

func TestNewSource_File(t *testing.T) {
	src, err := NewSource(context.Background(), "data/kb.json", S3Config{})
	require.NoError(t, err)
	assert.Equal(t, "data/kb.json", src.Describe())
}

func TestFileSource_ShippedSample(t *testing.T) {
	entries, err := NewFileSource(filepath.Join("..", "..", "..", "data", "knowledge.json")).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 8)
	for _, e := range entries {
		assert.NotEmpty(t, e.Questions)
		assert.NotEmpty(t, e.Answer)
		assert.NotEmpty(t, e.Source)
	}

	ix, report := NewIndex(entries)
	assert.Equal(t, 8, ix.Len())
	assert.Zero(t, report.Skipped)
	assert.Empty(t, report.Collisions)
	assert.Equal(t, 18, report.Keys)

	m, ok := ix.Lookup("شروط المتبرع")
	require.True(t, ok)
	assert.Equal(t, entries[0].Answer, m.Entry.Answer)

	m, ok = ix.Lookup("أنواع فصائل الدم")
	require.True(t, ok)
	assert.Equal(t, entries[7].Answer, m.Entry.Answer)
}
