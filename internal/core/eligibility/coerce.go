package eligibility

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/agenthands/zomra/internal/core/model"
)

// AnswersFromMap builds answers from a loosely typed payload (decoded JSON or
// form values). Missing, blank or malformed fields take their defaults; it
// never fails.
func AnswersFromMap(payload map[string]any) model.EligibilityAnswers {
	a := DefaultAnswers()
	if payload == nil {
		return a
	}

	a.Age = toInt(payload["age"], 0)
	a.Weight = toFloat(payload["weight"], 0)
	a.Gender = toString(payload["gender"])
	a.LastDonationDays = toCount(payload["last_donation_days"], UnknownDays)
	a.OnAnticoagulants = toBool(payload["on_anticoagulants"])
	a.OnAntibiotics = toBool(payload["on_antibiotics"])
	a.HasCold = toBool(payload["has_cold"])
	a.Pregnant = toBool(payload["pregnant"])
	a.Breastfeeding = toBool(payload["breastfeeding"])
	a.RecentProcedureDays = toCount(payload["recent_procedure_days"], UnknownDays)
	a.TattooMonths = toCount(payload["tattoo_months"], UnknownMonths)
	a.RecentTravel = toBool(payload["recent_travel"])
	a.Lang = model.ParseLang(toString(payload["lang"]))
	return a
}

func toFloat(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return def
		}
		return x
	case float32:
		return toFloat(float64(x), def)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return toFloat(f, def)
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toFloat(f, def)
		}
	}
	return def
}

func toInt(v any, def int) int {
	f := toFloat(v, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}

// toCount reads an elapsed-time counter. Negative values are malformed and
// take the default.
func toCount(v any, def int) int {
	n := toInt(v, def)
	if n < 0 {
		return def
	}
	return n
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "yes", "y", "on", "نعم":
			return true
		}
	}
	return false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
