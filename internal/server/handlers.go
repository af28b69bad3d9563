package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/core/eligibility"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/notify"
)

const (
	msgEmailRequired = "البريد مطلوب."
	msgSMTPDisabled  = "SMTP غير مفعّل في الخادم."
	msgNoCampaigns   = "لا يوجد ملف حملات"
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"

	reminderNote = "Reminder for next eligible donation (whole blood)."
)

func (s *Server) Health(c *gin.Context) {
	resp := gin.H{
		"ok":                true,
		"llm":               s.deps.Assistant != nil && s.deps.Assistant.GenerationEnabled(),
		"provider":          s.deps.Provider,
		"model":             s.deps.Model,
		"urgent_sheet":      false,
		"urgent_json":       nil,
		"smtp_ready":        s.deps.Mailer != nil && s.deps.Mailer.Ready(),
		"knowledge_entries": 0,
	}
	if s.deps.Needs != nil {
		resp["urgent_sheet"] = s.deps.Needs.SheetConfigured()
		if path, ok := s.deps.Needs.JSONAvailable(); ok {
			resp["urgent_json"] = path
		}
	}
	if s.deps.Knowledge != nil {
		resp["knowledge_entries"] = s.deps.Knowledge.Len()
	}
	c.JSON(http.StatusOK, resp)
}

// Chat always answers 200; failures surface as Fallback or Error results.
func (s *Server) Chat(c *gin.Context) {
	var q model.ChatQuery
	if err := bindOptionalJSON(c, &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	q.UILang = model.ParseLang(string(q.UILang))

	res := s.deps.Assistant.Ask(c.Request.Context(), q)
	c.JSON(http.StatusOK, res)
}

func (s *Server) EligibilityQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": eligibility.Questions()})
}

func (s *Server) EvaluateEligibility(c *gin.Context) {
	payload := map[string]any{}
	if err := bindOptionalJSON(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res := eligibility.Evaluate(eligibility.AnswersFromMap(payload), s.Now())
	c.JSON(http.StatusOK, gin.H{
		"eligible":           res.Eligible,
		"reasons":            res.Reasons,
		"next_eligible_date": res.NextEligibleDate.Format(eligibility.DateLayout),
		"state":              res.State,
	})
}

type reminderRequest struct {
	UserHint string `json:"user_hint"`
	Channel  string `json:"channel"`
	Contact  string `json:"contact"`
}

func (s *Server) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}
	if s.deps.Reminders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "reminders disabled"})
		return
	}

	r := model.Reminder{
		UserHint: orDefault(req.UserHint, "User"),
		Channel:  orDefault(req.Channel, "email"),
		Contact:  strings.TrimSpace(req.Contact),
		NextDate: s.nextDonationDate(),
		Note:     reminderNote,
	}
	saved, err := s.deps.Reminders.SaveReminder(c.Request.Context(), r)
	if err != nil {
		s.logger.Error("failed to save reminder", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"id":        saved.ID,
		"next_date": saved.NextDate.Format(eligibility.DateLayout),
	})
}

type emailRequest struct {
	Email    string `json:"email"`
	NextDate string `json:"next_date"`
}

func (s *Server) EmailReminder(c *gin.Context) {
	var req emailRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}
	to := strings.TrimSpace(req.Email)
	if to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msgEmailRequired})
		return
	}
	next := strings.TrimSpace(req.NextDate)
	if next == "" {
		next = s.nextDonationDate().Format(eligibility.DateLayout)
	}

	if s.deps.Mailer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msgSMTPDisabled})
		return
	}
	if err := s.deps.Mailer.SendReminder(c.Request.Context(), to, next); err != nil {
		msg := err.Error()
		if errors.Is(err, notify.ErrNotConfigured) {
			msg = msgSMTPDisabled
		}
		s.logger.Warn("reminder email not sent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) ReminderICS(c *gin.Context) {
	date := s.nextDonationDate()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.Parse(eligibility.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msgInvalidDate})
			return
		}
		date = parsed
	}

	body := notify.ReminderCalendar(date, s.Now())
	c.Header("Content-Disposition", `attachment; filename="zomra-reminder.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (s *Server) UrgentNeeds(c *gin.Context) {
	if s.deps.Needs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "urgent needs disabled"})
		return
	}
	c.JSON(http.StatusOK, s.deps.Needs.Urgent(c.Request.Context()))
}

func (s *Server) Campaigns(c *gin.Context) {
	var (
		doc any
		err error
	)
	if s.deps.Needs == nil {
		err = errors.New("no campaigns source")
	} else {
		doc, err = s.deps.Needs.Campaigns()
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "campaigns": []any{}, "message": msgNoCampaigns})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "campaigns": doc})
}

func (s *Server) ReloadKnowledge(c *gin.Context) {
	report, err := s.deps.Knowledge.Reload(c.Request.Context())
	if err != nil {
		s.logger.Warn("knowledge reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": report})
}

func (s *Server) nextDonationDate() time.Time {
	now := s.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, s.deps.IntervalDays)
}

// bindOptionalJSON treats an empty body as an empty object.
func bindOptionalJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
