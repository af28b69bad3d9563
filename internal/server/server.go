package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/core/knowledge"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/needs"
)

const requestIDHeader = "X-Request-ID"

type Assistant interface {
	Ask(ctx context.Context, q model.ChatQuery) model.ChatResult
	GenerationEnabled() bool
}

type KnowledgeBase interface {
	Reload(ctx context.Context) (knowledge.BuildReport, error)
	Len() int
}

type ReminderStore interface {
	SaveReminder(ctx context.Context, r model.Reminder) (model.Reminder, error)
}

type NeedsBoard interface {
	Urgent(ctx context.Context) needs.Report
	Campaigns() (any, error)
	SheetConfigured() bool
	JSONAvailable() (string, bool)
}

type Mailer interface {
	Ready() bool
	SendReminder(ctx context.Context, to, nextDate string) error
}

// Deps are the collaborators behind the HTTP API. Reminders, Needs and
// Mailer may be nil; their endpoints then report the feature as disabled.
type Deps struct {
	Assistant    Assistant
	Knowledge    KnowledgeBase
	Reminders    ReminderStore
	Needs        NeedsBoard
	Mailer       Mailer
	Provider     string
	Model        string
	IntervalDays int
	Logger       *zap.Logger
}

type Server struct {
	deps   Deps
	logger *zap.Logger
	Now    func() time.Time
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.IntervalDays <= 0 {
		deps.IntervalDays = 90
	}
	return &Server{deps: deps, logger: deps.Logger, Now: time.Now}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.Health)

	api := r.Group("/api")
	api.POST("/chat", s.Chat)
	api.GET("/eligibility/questions", s.EligibilityQuestions)
	api.POST("/eligibility/evaluate", s.EvaluateEligibility)
	api.POST("/reminder", s.CreateReminder)
	api.POST("/reminder/email", s.EmailReminder)
	api.GET("/reminder/ics", s.ReminderICS)
	api.GET("/urgent_needs", s.UrgentNeeds)
	api.GET("/campaigns", s.Campaigns)
	api.POST("/knowledge/reload", s.ReloadKnowledge)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
