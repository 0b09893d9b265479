package dataprocessing

import (
	"meddash/pkg/contracts/domain"
)

// TimelineLimit caps the documents listed in a patient profile.
const TimelineLimit = 10

// ListPatients returns one entry per patient RUT in first-seen order.
func ListPatients(docs []domain.Document) []domain.PatientSummary {
	index := map[string]int{}
	patients := []domain.PatientSummary{}

	for _, doc := range docs {
		if doc.RUTPaciente == "" {
			continue
		}
		if i, ok := index[doc.RUTPaciente]; ok {
			patients[i].TotalDocs++
			continue
		}
		index[doc.RUTPaciente] = len(patients)
		patients = append(patients, domain.PatientSummary{
			RUT:       doc.RUTPaciente,
			Nombre:    doc.NombrePaciente,
			TotalDocs: 1,
		})
	}
	return patients
}

// BuildPatientProfile summarizes the documents of one patient. The boolean is
// false when the RUT has no documents.
func BuildPatientProfile(docs []domain.Document, rut string) (domain.PatientProfile, bool) {
	profile := domain.PatientProfile{RUT: rut, Timeline: []domain.Document{}}
	doctors := map[string]struct{}{}

	for _, doc := range docs {
		if rut == "" || doc.RUTPaciente != rut {
			continue
		}
		if profile.TotalDocs == 0 {
			profile.Nombre = doc.NombrePaciente
		}
		profile.TotalDocs++
		profile.TotalPrestaciones += len(doc.Prestaciones)
		if doc.Error {
			profile.ErrorCount++
		}
		if doc.RUTMedico != "" {
			doctors[doc.RUTMedico] = struct{}{}
		}
		if len(profile.Timeline) < TimelineLimit {
			profile.Timeline = append(profile.Timeline, doc)
		}
	}

	profile.UniqueDoctors = len(doctors)
	return profile, profile.TotalDocs > 0
}
