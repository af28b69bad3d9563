package needs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/zomra/internal/config"
	"github.com/agenthands/zomra/internal/core/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatRows(t *testing.T) {
	rows := []map[string]string{
		{"المستشفى": "مستشفى الثغر", "الحالة": "عاجل", "التفاصيل": "O-"},
		{"Hospital": "King Abdulaziz", "Status": "high", "Location": "https://maps.example/kau"},
		{"status": "no hospital, skipped"},
	}

	got := FormatRows(rows)
	require.Len(t, got, 2)
	assert.Equal(t, model.UrgentNeed{
		Hospital:    "مستشفى الثغر",
		Status:      "عاجل",
		Details:     "O-",
		LocationURL: MapsSearchURL("مستشفى الثغر"),
	}, got[0])
	assert.Equal(t, "https://maps.example/kau", got[1].LocationURL)
}

func TestMapsSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=East%20Jeddah%20Hospital",
		MapsSearchURL("East Jeddah Hospital"))
}

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("\ufeffhospital,status,details\nA,urgent,O+\nB,normal\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["hospital"])
	assert.Equal(t, "O+", rows[0]["details"])
	assert.Equal(t, "", rows[1]["details"])

	rows, err = ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUrgent_SheetFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("hospital,status,details\nمستشفى الملك عبدالله,عاجل,AB-\n"))
	}))
	defer srv.Close()

	svc := NewService(config.NeedsConfig{
		SheetCSV: srv.URL,
		JSONPath: writeFile(t, "needs.json", `[{"hospital":"from json"}]`),
	}, nil)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC) }

	report := svc.Urgent(context.Background())
	assert.Equal(t, SourceSheet, report.Source)
	require.Len(t, report.Needs, 1)
	assert.Equal(t, "مستشفى الملك عبدالله", report.Needs[0].Hospital)
	assert.Equal(t, AnswerArabic, report.AnswerAR)
	assert.Equal(t, "2025-03-10T08:30:00.000000Z", report.UpdatedAt)
}

func TestUrgent_SheetFailureFallsBackToJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(config.NeedsConfig{
		SheetCSV: srv.URL,
		JSONPath: writeFile(t, "needs.json", `[{"Hospital":"Bank","Status":"high","Details":3}]`),
	}, nil)

	report := svc.Urgent(context.Background())
	assert.Equal(t, SourceJSON, report.Source)
	require.Len(t, report.Needs, 1)
	assert.Equal(t, "Bank", report.Needs[0].Hospital)
	assert.Equal(t, "3", report.Needs[0].Details)
}

func TestUrgent_BuiltinFallback(t *testing.T) {
	svc := NewService(config.NeedsConfig{
		JSONPath: filepath.Join(t.TempDir(), "missing.json"),
	}, nil)

	report := svc.Urgent(context.Background())
	assert.Equal(t, SourceFallback, report.Source)
	assert.Equal(t, Fallback(), report.Needs)

	// an empty list is treated like no data
	svc = NewService(config.NeedsConfig{JSONPath: writeFile(t, "needs.json", `[]`)}, nil)
	assert.Equal(t, SourceFallback, svc.Urgent(context.Background()).Source)
}

func TestCampaigns(t *testing.T) {
	svc := NewService(config.NeedsConfig{
		CampaignsPath: writeFile(t, "campaigns.json", `[{"title":"حملة الجامعة","date":"2025-04-01"}]`),
	}, nil)
	doc, err := svc.Campaigns()
	require.NoError(t, err)
	list, ok := doc.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)

	for _, path := range []string{
		filepath.Join(t.TempDir(), "missing.json"),
		writeFile(t, "empty.json", `[]`),
		writeFile(t, "broken.json", `{`),
	} {
		svc := NewService(config.NeedsConfig{CampaignsPath: path}, nil)
		_, err := svc.Campaigns()
		assert.ErrorIs(t, err, ErrNoCampaigns, path)
	}
}

func TestJSONAvailable(t *testing.T) {
	path := writeFile(t, "needs.json", `[]`)
	got, ok := NewService(config.NeedsConfig{JSONPath: path}, nil).JSONAvailable()
	assert.True(t, ok)
	assert.Equal(t, path, got)

	_, ok = NewService(config.NeedsConfig{}, nil).JSONAvailable()
	assert.False(t, ok)
}
