package dataprocessing

import (
	"math"
	"sort"

	"meddash/pkg/contracts/domain"
)

type doctorAccumulator struct {
	nombre     string
	documentos int
	errores    int
	tiempo     int
	pacientes  map[string]struct{}
}

// CalculateDoctorStats groups documents by RUT_medico. Documents without a
// doctor RUT are skipped. The result is ordered by document count,
// descending, with ties in first-seen order.
func CalculateDoctorStats(docs []domain.Document) []domain.DoctorStats {
	order := []string{}
	byRUT := map[string]*doctorAccumulator{}

	for _, doc := range docs {
		if doc.RUTMedico == "" {
			continue
		}
		acc, ok := byRUT[doc.RUTMedico]
		if !ok {
			acc = &doctorAccumulator{nombre: doc.NombreMedico, pacientes: map[string]struct{}{}}
			byRUT[doc.RUTMedico] = acc
			order = append(order, doc.RUTMedico)
		}
		acc.documentos++
		acc.tiempo += doc.InferenceTime
		if doc.Error {
			acc.errores++
		}
		if doc.RUTPaciente != "" {
			acc.pacientes[doc.RUTPaciente] = struct{}{}
		}
	}

	results := make([]domain.DoctorStats, 0, len(order))
	for _, rut := range order {
		acc := byRUT[rut]
		results = append(results, domain.DoctorStats{
			RUT:            rut,
			Nombre:         acc.nombre,
			Documentos:     acc.documentos,
			Pacientes:      len(acc.pacientes),
			TasaExito:      float64(acc.documentos-acc.errores) / float64(acc.documentos) * 100,
			TiempoPromedio: int(math.Round(float64(acc.tiempo) / float64(acc.documentos))),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Documentos > results[j].Documentos
	})
	return results
}

// SummarizeDoctors averages the per-doctor figures.
func SummarizeDoctors(doctors []domain.DoctorStats) domain.DoctorSummary {
	summary := domain.DoctorSummary{TotalDoctors: len(doctors)}
	if len(doctors) == 0 {
		return summary
	}

	var docs, rate, tiempo float64
	for _, d := range doctors {
		docs += float64(d.Documentos)
		rate += d.TasaExito
		tiempo += float64(d.TiempoPromedio)
	}
	n := float64(len(doctors))
	summary.AvgDocsPerDoctor = docs / n
	summary.AvgSuccessRate = rate / n
	summary.AvgTime = tiempo / n
	return summary
}
