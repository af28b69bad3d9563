package eligibility

import (
	"fmt"
	"strings"

	"github.com/agenthands/zomra/internal/core/model"
)

type catalog struct {
	tooYoung       string
	underweight    string
	tooSoon        func(left int, date string) string
	anticoagulants string
	antibiotics    string
	cold           string
	procedure      string
	tattoo         string
	pregnant       string
	breastfeeding  string
	travel         string
}

var arabic = catalog{
	tooYoung:    "العمر أقل من 18.",
	underweight: "الوزن أقل من 50 كجم.",
	tooSoon: func(left int, date string) string {
		return fmt.Sprintf("لم يمض %d يومًا منذ آخر تبرع. متاح بعد %d يومًا (%s).", WholeBloodIntervalDays, left, date)
	},
	anticoagulants: "أدوية السيولة تمنع التبرع مؤقتًا.",
	antibiotics:    "أجّل التبرع 7 أيام بعد آخر جرعة مضاد حيوي.",
	cold:           "أعراض زكام/حمى—أجّل حتى التعافي 7 أيام.",
	procedure:      "إجراء/قلع أسنان حديث—انتظر 7 أيام.",
	tattoo:         "وشم/ثقب خلال آخر 6 أشهر—تأجيل مؤقت.",
	pregnant:       "الحمل يمنع التبرع—يستأنف بعد 6 أسابيع من الولادة/الإجهاض.",
	breastfeeding:  "الرضاعة تمنع التبرع في بعض البروتوكولات—استشيري مركز الدم.",
	travel:         "سفر حديث قد يستلزم تأجيل مؤقت (حسب الإرشادات المحلية).",
}

var english = catalog{
	tooYoung:    "Age is under 18.",
	underweight: "Weight is under 50 kg.",
	tooSoon: func(left int, date string) string {
		return fmt.Sprintf("%d days have not passed since your last donation. Eligible in %d days (%s).", WholeBloodIntervalDays, left, date)
	},
	anticoagulants: "Blood thinners temporarily prevent donation.",
	antibiotics:    "Wait 7 days after your last antibiotic dose.",
	cold:           "Cold or fever symptoms: wait 7 days after recovery.",
	procedure:      "Recent procedure or tooth extraction: wait 7 days.",
	tattoo:         "Tattoo or piercing within the last 6 months: temporary deferral.",
	pregnant:       "Pregnancy prevents donation; resume 6 weeks after delivery or miscarriage.",
	breastfeeding:  "Breastfeeding prevents donation under some protocols; consult the blood centre.",
	travel:         "Recent travel may require a temporary deferral (per local guidelines).",
}

func catalogFor(lang model.Lang) catalog {
	if lang == model.LangEnglish {
		return english
	}
	return arabic
}

func isFemale(gender string) bool {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "female", "f", "أنثى", "انثى":
		return true
	}
	return false
}
