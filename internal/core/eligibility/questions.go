package eligibility

type Question struct {
	Key      string   `json:"key"`
	Type     string   `json:"type"` // "number", "boolean" or "choice"
	LabelAr  string   `json:"label_ar"`
	LabelEn  string   `json:"label_en"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Questions lists the questionnaire fields in rule order.
func Questions() []Question {
	return []Question{
		{Key: "age", Type: "number", LabelAr: "العمر", LabelEn: "Age", Required: true},
		{Key: "weight", Type: "number", LabelAr: "الوزن (كجم)", LabelEn: "Weight (kg)", Required: true},
		{Key: "gender", Type: "choice", LabelAr: "الجنس", LabelEn: "Gender", Options: []string{"male", "female", "other"}},
		{Key: "last_donation_days", Type: "number", LabelAr: "أيام منذ آخر تبرع", LabelEn: "Days since last donation"},
		{Key: "on_anticoagulants", Type: "boolean", LabelAr: "تتناول أدوية سيولة؟", LabelEn: "Taking blood thinners?"},
		{Key: "on_antibiotics", Type: "boolean", LabelAr: "تتناول مضادًا حيويًا؟", LabelEn: "Taking antibiotics?"},
		{Key: "has_cold", Type: "boolean", LabelAr: "أعراض زكام أو حمى؟", LabelEn: "Cold or fever symptoms?"},
		{Key: "recent_procedure_days", Type: "number", LabelAr: "أيام منذ آخر إجراء طبي/قلع أسنان", LabelEn: "Days since a medical or dental procedure"},
		{Key: "tattoo_months", Type: "number", LabelAr: "أشهر منذ آخر وشم/ثقب", LabelEn: "Months since last tattoo or piercing"},
		{Key: "pregnant", Type: "boolean", LabelAr: "حامل؟", LabelEn: "Pregnant?"},
		{Key: "breastfeeding", Type: "boolean", LabelAr: "مرضع؟", LabelEn: "Breastfeeding?"},
		{Key: "recent_travel", Type: "boolean", LabelAr: "سفر حديث؟", LabelEn: "Recent travel?"},
	}
}
