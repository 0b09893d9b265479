package dataprocessing

import (
	"sort"
	"strings"

	"meddash/pkg/contracts/domain"
)

const (
	// TopPrestaciones is the length of the most-frequent list.
	TopPrestaciones = 10
	// LowConfidenceThreshold marks scores that need manual review.
	LowConfidenceThreshold = 0.70
)

// CategoryOther collects prestaciones that match no category keyword.
const CategoryOther = "Otros"

type prestacionCategory struct {
	name     string
	keywords []string
}

// prestacionCategories is matched in order; the first match wins.
var prestacionCategories = []prestacionCategory{
	{"Bioquímica", []string{"PERFIL", "GLICEMIA", "GLUCOSA"}},
	{"Hematología", []string{"HEMOGRAMA", "VHS"}},
	{"Endocrinología", []string{"TSH", "T3", "T4"}},
	{"Infectología", []string{"VIH", "VDRL", "HEPATITIS"}},
	{"Uroanálisis", []string{"ORINA", "UROCULTIVO"}},
}

// CategorizePrestacion returns the clinical area of a description.
func CategorizePrestacion(descripcion string) string {
	upper := strings.ToUpper(descripcion)
	for _, c := range prestacionCategories {
		for _, kw := range c.keywords {
			if strings.Contains(upper, kw) {
				return c.name
			}
		}
	}
	return CategoryOther
}

// SummarizePrestaciones builds the prestaciones breakdown. Entries without a
// description are excluded from every figure except AvgPerDoc.
func SummarizePrestaciones(docs []domain.Document) domain.PrestacionesSummary {
	summary := domain.PrestacionesSummary{
		Top:        []domain.PrestacionCount{},
		Categories: make([]domain.PrestacionCategory, 0, len(prestacionCategories)+1),
	}

	categoryIndex := map[string]int{}
	for i, c := range prestacionCategories {
		summary.Categories = append(summary.Categories, domain.PrestacionCategory{Name: c.name})
		categoryIndex[c.name] = i
	}
	categoryIndex[CategoryOther] = len(summary.Categories)
	summary.Categories = append(summary.Categories, domain.PrestacionCategory{Name: CategoryOther})

	entries := 0
	scoreSum := 0.0
	counts := map[string]int{}
	firstSeen := []string{}

	for _, doc := range docs {
		entries += len(doc.Prestaciones)
		for _, p := range doc.Prestaciones {
			if p.Descripcion == "" {
				continue
			}
			summary.Total++
			scoreSum += p.Score
			if p.Score < LowConfidenceThreshold {
				summary.LowConfidence++
			}
			if _, ok := counts[p.Descripcion]; !ok {
				firstSeen = append(firstSeen, p.Descripcion)
			}
			counts[p.Descripcion]++
			summary.Categories[categoryIndex[CategorizePrestacion(p.Descripcion)]].Count++
		}
	}

	summary.Unique = len(counts)
	if len(docs) > 0 {
		summary.AvgPerDoc = float64(entries) / float64(len(docs))
	}
	if summary.Total > 0 {
		summary.AvgScore = scoreSum / float64(summary.Total)
	}

	ranked := make([]domain.PrestacionCount, 0, len(firstSeen))
	for _, desc := range firstSeen {
		ranked = append(ranked, domain.PrestacionCount{Descripcion: desc, Count: counts[desc]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopPrestaciones {
		ranked = ranked[:TopPrestaciones]
	}
	summary.Top = ranked

	return summary
}
