package dataprocessing

import (
	"strings"
	"time"

	"meddash/pkg/contracts/domain"
)

// Pagination limits of the documents table.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

const filterDateLayout = "2006-01-02"

// FilterDocuments returns the documents matching every active criterion of f,
// preserving input order.
func FilterDocuments(docs []domain.Document, f domain.DocumentFilter) []domain.Document {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	from, hasFrom := parseFilterDate(f.FechaInicio)
	to, hasTo := parseFilterDate(f.FechaFin)
	tipo := f.TipoDocumento
	if tipo == "all" {
		tipo = ""
	}

	filtered := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if search != "" && !matchesSearch(doc, search) {
			continue
		}
		if hasFrom || hasTo {
			ts, ok := ParseTimestamp(doc.DateTime)
			if !ok {
				continue
			}
			day := truncateToDay(ts)
			if hasFrom && day.Before(from) {
				continue
			}
			if hasTo && day.After(to) {
				continue
			}
		}
		if tipo != "" && doc.TipoDocumento != tipo {
			continue
		}
		if f.RUTMedico != "" && !strings.Contains(doc.RUTMedico, f.RUTMedico) {
			continue
		}
		if f.RUTPaciente != "" && !strings.Contains(doc.RUTPaciente, f.RUTPaciente) {
			continue
		}
		if f.OnlyErrors && !doc.Error {
			continue
		}
		filtered = append(filtered, doc)
	}
	return filtered
}

func matchesSearch(doc domain.Document, needle string) bool {
	for _, field := range []string{doc.DocumentID, doc.NombrePaciente, doc.NombreMedico, doc.RUTPaciente, doc.RUTMedico} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func parseFilterDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(filterDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Paginate slices docs into a 1-based page. Non-positive arguments fall back
// to the defaults and perPage is capped at MaxPerPage.
func Paginate(docs []domain.Document, page, perPage int) domain.Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	total := len(docs)
	totalPages := (total + perPage - 1) / perPage

	result := domain.Page{
		Items:       []domain.Document{},
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}

	start := (page - 1) * perPage
	if start >= total {
		return result
	}
	end := start + perPage
	if end > total {
		end = total
	}
	result.Items = docs[start:end]
	return result
}
