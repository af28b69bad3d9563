// Package needs serves the urgent blood-need board and donation campaigns.
package needs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/config"
	"github.com/agenthands/zomra/internal/core/model"
)

const (
	AnswerArabic  = "احتياجات عاجلة للتبرع، يرجى الاتصال قبل الحضور."
	AnswerEnglish = "Urgent needs, please call before visiting."

	SourceSheet    = "sheet"
	SourceJSON     = "json"
	SourceFallback = "fallback"

	defaultTimeout = 6 * time.Second
	maxSheetBytes  = 1 << 20
)

var ErrNoCampaigns = errors.New("no campaigns file")

var (
	hospitalColumns = []string{"hospital", "المستشفى", "Hospital"}
	statusColumns   = []string{"status", "الحالة", "Status"}
	detailsColumns  = []string{"details", "التفاصيل", "Details"}
	locationColumns = []string{"location_url", "Location", "الموقع"}
)

type Report struct {
	AnswerAR  string             `json:"answer_ar"`
	AnswerEN  string             `json:"answer_en"`
	Needs     []model.UrgentNeed `json:"needs"`
	UpdatedAt string             `json:"updated_at"`
	Source    string             `json:"-"`
}

type Service struct {
	sheetURL      string
	jsonPath      string
	campaignsPath string
	client        *http.Client
	logger        *zap.Logger
	Now           func() time.Time
}

func NewService(cfg config.NeedsConfig, logger *zap.Logger) *Service {
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sheetURL:      strings.TrimSpace(cfg.SheetCSV),
		jsonPath:      strings.TrimSpace(cfg.JSONPath),
		campaignsPath: strings.TrimSpace(cfg.CampaignsPath),
		client:        &http.Client{Timeout: timeout},
		logger:        logger,
		Now:           time.Now,
	}
}

// SheetConfigured reports whether a published sheet URL is set.
func (s *Service) SheetConfigured() bool {
	return s.sheetURL != ""
}

// JSONAvailable returns the needs file path when it exists.
func (s *Service) JSONAvailable() (string, bool) {
	if s.jsonPath == "" {
		return "", false
	}
	if _, err := os.Stat(s.jsonPath); err != nil {
		return "", false
	}
	return s.jsonPath, true
}

// Urgent tries the sheet, then the JSON file, then the built-in list. It
// never fails; source errors are logged.
func (s *Service) Urgent(ctx context.Context) Report {
	report := Report{
		AnswerAR:  AnswerArabic,
		AnswerEN:  AnswerEnglish,
		UpdatedAt: s.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z",
	}

	if s.sheetURL != "" {
		rows, err := s.fetchSheet(ctx)
		if err != nil {
			s.logger.Warn("failed to fetch urgent needs sheet", zap.Error(err))
		} else if needs := FormatRows(rows); len(needs) > 0 {
			report.Needs, report.Source = needs, SourceSheet
			return report
		}
	}

	if s.jsonPath != "" {
		rows, err := s.loadJSONRows()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read urgent needs file", zap.String("path", s.jsonPath), zap.Error(err))
		} else if needs := FormatRows(rows); len(needs) > 0 {
			report.Needs, report.Source = needs, SourceJSON
			return report
		}
	}

	report.Needs, report.Source = Fallback(), SourceFallback
	return report
}

func (s *Service) fetchSheet(ctx context.Context) ([]map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sheetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned status %d", resp.StatusCode)
	}
	return ParseCSV(io.LimitReader(resp.Body, maxSheetBytes))
}

func (s *Service) loadJSONRows() ([]map[string]string, error) {
	data, err := os.ReadFile(s.jsonPath)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.jsonPath, err)
	}
	rows := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		row := make(map[string]string, len(r))
		for k, v := range r {
			if v == nil {
				continue
			}
			row[k] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Campaigns returns the raw campaigns document. ErrNoCampaigns means the
// file is missing, unreadable or empty.
func (s *Service) Campaigns() (any, error) {
	if s.campaignsPath == "" {
		return nil, ErrNoCampaigns
	}
	data, err := os.ReadFile(s.campaignsPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read campaigns file", zap.Error(err))
		}
		return nil, ErrNoCampaigns
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("failed to parse campaigns file", zap.Error(err))
		return nil, ErrNoCampaigns
	}
	if isEmpty(doc) {
		return nil, ErrNoCampaigns
	}
	return doc, nil
}

func isEmpty(doc any) bool {
	switch v := doc.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case string:
		return v == ""
	}
	return false
}

// ParseCSV reads a header row followed by records into column maps.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []map[string]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FormatRows maps rows with English or Arabic column names to needs. Rows
// without a hospital are skipped.
func FormatRows(rows []map[string]string) []model.UrgentNeed {
	var out []model.UrgentNeed
	for _, r := range rows {
		hospital := pick(r, hospitalColumns)
		if hospital == "" {
			continue
		}
		loc := pick(r, locationColumns)
		if loc == "" {
			loc = MapsSearchURL(hospital)
		}
		out = append(out, model.UrgentNeed{
			Hospital:    hospital,
			Status:      pick(r, statusColumns),
			Details:     pick(r, detailsColumns),
			LocationURL: loc,
		})
	}
	return out
}

func pick(row map[string]string, columns []string) string {
	for _, c := range columns {
		if v := row[c]; v != "" {
			return v
		}
	}
	return ""
}

func MapsSearchURL(place string) string {
	q := strings.ReplaceAll(url.QueryEscape(place), "+", "%20")
	return "https://www.google.com/maps/search/?api=1&query=" + q
}

// Fallback is served when no configured source yields rows.
func Fallback() []model.UrgentNeed {
	return []model.UrgentNeed{
		{
			Hospital:    "مستشفى الملك فهد العام بجدة",
			Status:      "عاجل",
			Details:     "+O طوارئ",
			LocationURL: MapsSearchURL("King Fahd General Hospital Jeddah"),
		},
		{
			Hospital:    "بنك الدم الإقليمي، جدة",
			Status:      "مرتفع جداً",
			Details:     "نقص صفائح B-",
			LocationURL: MapsSearchURL("Jeddah Regional Laboratory and Blood Bank"),
		},
		{
			Hospital:    "مستشفى شرق جدة",
			Status:      "عاجل",
			Details:     "A- طوارئ",
			LocationURL: MapsSearchURL("East Jeddah Hospital Blood Bank"),
		},
	}
}
