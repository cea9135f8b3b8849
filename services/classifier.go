package services

import (
	"strings"

	"github.com/phdonas/site/models"
)

// pillarKeywords maps each pillar to the substrings that claim a category
// label for it. Iteration order is fixed: the first pillar whose keyword set
// matches any label wins, so classification is deterministic.
var pillarKeywords = []struct {
	id       models.PillarID
	keywords []string
}{
	{models.PillarProfPaulo, []string{"paulo", "prof"}},
	{models.PillarConsultoria, []string{"imob", "consultor"}},
	{models.Pillar4050OuMais, []string{"4050", "longevid", "mais"}},
	{models.PillarAcademiaGas, []string{"gas", "academia"}},
}

// ClassifyPillar maps a list of category labels (names or slugs) to one of the
// four fixed pillar identifiers. Classification is total: when no label
// matches any keyword set, or the list is empty, the default pillar
// (prof-paulo) is returned. No error is ever raised.
func ClassifyPillar(labels []string) models.PillarID {
	for _, entry := range pillarKeywords {
		for _, label := range labels {
			lowered := strings.ToLower(label)
			for _, keyword := range entry.keywords {
				if strings.Contains(lowered, keyword) {
					return entry.id
				}
			}
		}
	}
	return models.PillarProfPaulo
}
