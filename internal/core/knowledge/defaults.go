package knowledge

import "github.com/agenthands/zomra/internal/core/model"

// DefaultEntries is the built-in knowledge used when no source is available.
func DefaultEntries() []model.KnowledgeEntry {
	return []model.KnowledgeEntry{
		{
			Questions: []string{
				"ما هي شروط التبرع بالدم؟",
				"شروط المتبرع",
				"من يستطيع التبرع بالدم؟",
			},
			Answer: "العمر 18-60 سنة، الوزن ≥ 50 كجم، صحة جيدة، هيموغلوبين مناسب، لا وشم/ثقب آخر 6 أشهر، لا أمراض معدية. راجع المركز للتأكد.",
			Source: "KB",
		},
		{
			Questions: []string{
				"المدة الفاصلة بين التبرعات؟",
				"متى أستطيع التبرع مرة أخرى؟",
				"كم يوم بين كل تبرع وتبرع؟",
			},
			Answer: "الدم الكامل: 90 يومًا على الأقل. الصفائح/البلازما تختلف وقد تكون أقصر.",
			Source: "KB",
		},
		{
			Questions: []string{
				"هل التبرع بالدم مؤلم؟",
				"هل الإبرة تؤلم؟",
			},
			Answer: "الوخز لحظي وبسيط، السحب نفسه غير مؤلم عادةً ويستغرق دقائق.",
			Source: "KB",
		},
	}
}
