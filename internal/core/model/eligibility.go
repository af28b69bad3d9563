package model

import "time"

type EligibilityState string

const (
	StateEligible  EligibilityState = "eligible"
	StateTemporary EligibilityState = "temporary"
)

// EligibilityAnswers is the donor questionnaire. Day/month counters use large
// sentinels for "never/unknown" so that missing data does not defer a donor.
type EligibilityAnswers struct {
	Age                 int     `json:"age"`
	Weight              float64 `json:"weight"`
	Gender              string  `json:"gender"`
	LastDonationDays    int     `json:"last_donation_days"`
	OnAnticoagulants    bool    `json:"on_anticoagulants"`
	OnAntibiotics       bool    `json:"on_antibiotics"`
	HasCold             bool    `json:"has_cold"`
	Pregnant            bool    `json:"pregnant"`
	Breastfeeding       bool    `json:"breastfeeding"`
	RecentProcedureDays int     `json:"recent_procedure_days"`
	TattooMonths        int     `json:"tattoo_months"`
	RecentTravel        bool    `json:"recent_travel"`
	Lang                Lang    `json:"lang"`
}

type EligibilityResult struct {
	Eligible         bool             `json:"eligible"`
	Reasons          []string         `json:"reasons"`
	NextEligibleDate time.Time        `json:"-"`
	State            EligibilityState `json:"state"`
}
