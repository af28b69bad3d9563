package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/zomra/internal/core/knowledge"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/needs"
	"github.com/agenthands/zomra/internal/notify"
)

type fakeAssistant struct {
	last    model.ChatQuery
	enabled bool
}

func (f *fakeAssistant) Ask(ctx context.Context, q model.ChatQuery) model.ChatResult {
	f.last = q
	if strings.TrimSpace(q.Text) == "" {
		return model.ChatResult{Answer: "?", SourceType: model.SourceError, NotUnderstood: true}
	}
	return model.ChatResult{Answer: "جواب", SourceType: model.SourceKB, SourceLabel: "KB", CorrectedQuery: q.Text}
}

func (f *fakeAssistant) GenerationEnabled() bool { return f.enabled }

type fakeKnowledge struct {
	err error
}

func (f *fakeKnowledge) Reload(ctx context.Context) (knowledge.BuildReport, error) {
	return knowledge.BuildReport{Source: "kb.json", Entries: 3, Keys: 7}, f.err
}

func (f *fakeKnowledge) Len() int { return 3 }

type fakeReminders struct {
	saved []model.Reminder
	err   error
}

func (f *fakeReminders) SaveReminder(ctx context.Context, r model.Reminder) (model.Reminder, error) {
	if f.err != nil {
		return model.Reminder{}, f.err
	}
	r.ID = "rem-1"
	f.saved = append(f.saved, r)
	return r, nil
}

type fakeNeeds struct {
	campaigns any
}

func (f *fakeNeeds) Urgent(ctx context.Context) needs.Report {
	return needs.Report{AnswerAR: needs.AnswerArabic, AnswerEN: needs.AnswerEnglish, Needs: needs.Fallback(), UpdatedAt: "now"}
}

func (f *fakeNeeds) Campaigns() (any, error) {
	if f.campaigns == nil {
		return nil, needs.ErrNoCampaigns
	}
	return f.campaigns, nil
}

func (f *fakeNeeds) SheetConfigured() bool         { return false }
func (f *fakeNeeds) JSONAvailable() (string, bool) { return "", false }

type fakeMailer struct {
	ready bool
	err   error
	to    string
	date  string
}

func (f *fakeMailer) Ready() bool { return f.ready }

func (f *fakeMailer) SendReminder(ctx context.Context, to, nextDate string) error {
	f.to, f.date = to, nextDate
	return f.err
}

type fixture struct {
	router    *gin.Engine
	assistant *fakeAssistant
	knowledge *fakeKnowledge
	reminders *fakeReminders
	needs     *fakeNeeds
	mailer    *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		assistant: &fakeAssistant{enabled: true},
		knowledge: &fakeKnowledge{},
		reminders: &fakeReminders{},
		needs:     &fakeNeeds{},
		mailer:    &fakeMailer{ready: true},
	}
	srv := NewServer(Deps{
		Assistant: f.assistant,
		Knowledge: f.knowledge,
		Reminders: f.reminders,
		Needs:     f.needs,
		Mailer:    f.mailer,
		Provider:  "openai",
		Model:     "gpt-4o-mini",
	})
	srv.Now = func() time.Time { return time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC) }
	f.router = srv.SetupRouter()
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["llm"])
	assert.Equal(t, true, body["smtp_ready"])
	assert.Equal(t, float64(3), body["knowledge_entries"])
	assert.Nil(t, body["urgent_json"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestChat(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/chat", `{"message":"شروط التبرع","detail":true,"lang":"en-US"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "جواب", body["answer"])
	assert.Equal(t, "KB", body["source_type"])
	assert.Equal(t, "شروط التبرع", body["corrected_message"])
	assert.Equal(t, false, body["not_understood"])

	assert.Equal(t, model.LangEnglish, f.assistant.last.UILang)
	assert.True(t, f.assistant.last.WantDetail)
}

func TestChat_EmptyBodyStillAnswers(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/chat", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Error", decode(t, w)["source_type"])
	assert.Equal(t, model.LangArabic, f.assistant.last.UILang)
}

func TestChat_BadJSON(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEligibility(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/eligibility/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["questions"], 12)

	w = f.do(http.MethodPost, "/api/eligibility/evaluate", `{"age":30,"weight":70,"last_donation_days":30,"lang":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["eligible"])
	assert.Equal(t, "temporary", body["state"])
	assert.Equal(t, "2025-05-09", body["next_eligible_date"])
	assert.Len(t, body["reasons"], 1)

	w = f.do(http.MethodPost, "/api/eligibility/evaluate", `{"age":"30","weight":"70"}`)
	body = decode(t, w)
	assert.Equal(t, true, body["eligible"])
	assert.Equal(t, []any{}, body["reasons"])
	assert.Equal(t, "2025-06-08", body["next_eligible_date"])
}

func TestCreateReminder(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/reminder", `{"contact":" donor@example.org "}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "rem-1", body["id"])
	assert.Equal(t, "2025-06-08", body["next_date"])

	require.Len(t, f.reminders.saved, 1)
	saved := f.reminders.saved[0]
	assert.Equal(t, "User", saved.UserHint)
	assert.Equal(t, "email", saved.Channel)
	assert.Equal(t, "donor@example.org", saved.Contact)

	f.reminders.err = errors.New("db down")
	w = f.do(http.MethodPost, "/api/reminder", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEmailReminder(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/reminder/email", `{"email":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgEmailRequired, decode(t, w)["error"])

	w = f.do(http.MethodPost, "/api/reminder/email", `{"email":"donor@example.org"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "donor@example.org", f.mailer.to)
	assert.Equal(t, "2025-06-08", f.mailer.date)

	f.mailer.err = notify.ErrNotConfigured
	w = f.do(http.MethodPost, "/api/reminder/email", `{"email":"donor@example.org","next_date":"2025-07-01"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgSMTPDisabled, decode(t, w)["error"])
	assert.Equal(t, "2025-07-01", f.mailer.date)
}

func TestReminderICS(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/reminder/ics?date=2025-07-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "20250701")

	w = f.do(http.MethodGet, "/api/reminder/ics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "20250608")

	w = f.do(http.MethodGet, "/api/reminder/ics?date=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUrgentNeedsAndCampaigns(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/urgent_needs", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, needs.AnswerArabic, body["answer_ar"])
	assert.Len(t, body["needs"], 3)

	w = f.do(http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, msgNoCampaigns, body["message"])

	f.needs.campaigns = []any{map[string]any{"title": "حملة"}}
	body = decode(t, f.do(http.MethodGet, "/api/campaigns", ""))
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["campaigns"], 1)
}

func TestReloadKnowledge(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/knowledge/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])

	f.knowledge.err = errors.New("parse error")
	w = f.do(http.MethodPost, "/api/knowledge/reload", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
