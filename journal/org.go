package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatRecommendationOrg renders a RecommendationRecord as an Org-mode block
// suitable for pasting into a decision journal. Structured facts live in a
// PROPERTIES drawer for easy search; the narrative sections are placeholders.
func FormatRecommendationOrg(r RecommendationRecord) string {
	heading := fmt.Sprintf("** Hedge: %.1f%% (%s)", r.HedgeRatio*100, shortID(r.RecID))
	when := r.Time.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":REC_ID: %s\n", r.RecID))
	b.WriteString(fmt.Sprintf(":ID: %s\n", r.RecID))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", when))
	b.WriteString(fmt.Sprintf(":HEDGE_RATIO: %.4f\n", r.HedgeRatio))
	b.WriteString(fmt.Sprintf(":CARRY: %.4f\n", r.Carry))
	b.WriteString(fmt.Sprintf(":MOMENTUM: %.4f\n", r.Momentum))
	b.WriteString(fmt.Sprintf(":VALUE: %.4f\n", r.Value))
	b.WriteString(fmt.Sprintf(":CURRENT_RATE: %.4f\n", r.CurrentRate))
	b.WriteString(fmt.Sprintf(":TIER: %s\n", r.Tier))
	b.WriteString(fmt.Sprintf(":DOMESTIC_RATE: %.2f\n", r.DomesticRate))
	b.WriteString(fmt.Sprintf(":FOREIGN_RATE: %.2f\n", r.ForeignRate))
	b.WriteString(fmt.Sprintf(":OBSERVATIONS: %d\n", r.Observations))
	b.WriteString(fmt.Sprintf(":DATA_SOURCES: %s\n", r.DataSources))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Rationale\n- \n\n")
	b.WriteString("*** Action taken\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatRecommendationsOrg renders multiple records separated by blank lines.
func FormatRecommendationsOrg(recs []RecommendationRecord) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatRecommendationOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
