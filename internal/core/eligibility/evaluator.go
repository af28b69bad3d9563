// Package eligibility decides whether a donor may give whole blood today.
package eligibility

import (
	"time"

	"github.com/agenthands/zomra/internal/core/model"
)

const (
	WholeBloodIntervalDays = 90
	MinAge                 = 18
	MinWeightKg            = 50
	ProcedureDeferralDays  = 7
	TattooDeferralMonths   = 6

	// UnknownDays and UnknownMonths stand for "never" or "not answered".
	UnknownDays   = 9999
	UnknownMonths = 999

	DateLayout = "2006-01-02"
)

// DefaultAnswers is an empty questionnaire. Age and weight are mandatory, so
// their zero values fail the corresponding rules.
func DefaultAnswers() model.EligibilityAnswers {
	return model.EligibilityAnswers{
		LastDonationDays:    UnknownDays,
		RecentProcedureDays: UnknownDays,
		TattooMonths:        UnknownMonths,
		Lang:                model.LangArabic,
	}
}

// Evaluate checks every rule in a fixed order and never stops early. Only the
// donation-interval rule moves the next eligible date.
func Evaluate(a model.EligibilityAnswers, today time.Time) model.EligibilityResult {
	today = truncateDay(today)
	msg := catalogFor(a.Lang)

	reasons := []string{}
	next := today.AddDate(0, 0, WholeBloodIntervalDays)

	if a.Age < MinAge {
		reasons = append(reasons, msg.tooYoung)
	}
	if a.Weight < MinWeightKg {
		reasons = append(reasons, msg.underweight)
	}
	if a.LastDonationDays < WholeBloodIntervalDays {
		left := WholeBloodIntervalDays - a.LastDonationDays
		next = today.AddDate(0, 0, left)
		reasons = append(reasons, msg.tooSoon(left, next.Format(DateLayout)))
	}
	if a.OnAnticoagulants {
		reasons = append(reasons, msg.anticoagulants)
	}
	if a.OnAntibiotics {
		reasons = append(reasons, msg.antibiotics)
	}
	if a.HasCold {
		reasons = append(reasons, msg.cold)
	}
	if a.RecentProcedureDays < ProcedureDeferralDays {
		reasons = append(reasons, msg.procedure)
	}
	if a.TattooMonths < TattooDeferralMonths {
		reasons = append(reasons, msg.tattoo)
	}
	if isFemale(a.Gender) {
		if a.Pregnant {
			reasons = append(reasons, msg.pregnant)
		}
		if a.Breastfeeding {
			reasons = append(reasons, msg.breastfeeding)
		}
	}
	if a.RecentTravel {
		reasons = append(reasons, msg.travel)
	}

	eligible := len(reasons) == 0
	state := model.StateEligible
	if !eligible {
		state = model.StateTemporary
	}
	return model.EligibilityResult{
		Eligible:         eligible,
		Reasons:          reasons,
		NextEligibleDate: next,
		State:            state,
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
