package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meddash/pkg/contracts/domain"
)

func TestListPatients(t *testing.T) {
	docs := []domain.Document{
		{DocumentID: "1", RUTPaciente: "P2", NombrePaciente: "Luis"},
		{DocumentID: "2", RUTPaciente: "P1", NombrePaciente: "Ana"},
		{DocumentID: "3", RUTPaciente: "P2", NombrePaciente: "Luis Alberto"},
		{DocumentID: "4", RUTPaciente: "", NombrePaciente: "Sin RUT"},
	}

	assert.Equal(t, []domain.PatientSummary{
		{RUT: "P2", Nombre: "Luis", TotalDocs: 2},
		{RUT: "P1", Nombre: "Ana", TotalDocs: 1},
	}, ListPatients(docs))

	assert.Empty(t, ListPatients(nil))
}

func TestBuildPatientProfile(t *testing.T) {
	docs := []domain.Document{
		{DocumentID: "a", RUTPaciente: "P1", NombrePaciente: "Ana", RUTMedico: "M1", Prestaciones: []domain.Prestacion{{Descripcion: "TSH"}, {Descripcion: "T4"}}},
		{DocumentID: "b", RUTPaciente: "P2", NombrePaciente: "Luis", RUTMedico: "M1"},
		{DocumentID: "c", RUTPaciente: "P1", NombrePaciente: "Ana", RUTMedico: "M2", Error: true, Prestaciones: []domain.Prestacion{{Descripcion: "VHS"}}},
	}

	profile, ok := BuildPatientProfile(docs, "P1")
	require.True(t, ok)
	assert.Equal(t, "P1", profile.RUT)
	assert.Equal(t, "Ana", profile.Nombre)
	assert.Equal(t, 2, profile.TotalDocs)
	assert.Equal(t, 2, profile.UniqueDoctors)
	assert.Equal(t, 3, profile.TotalPrestaciones)
	assert.Equal(t, 1, profile.ErrorCount)
	assert.Equal(t, []string{"a", "c"}, ids(profile.Timeline))
}

func TestBuildPatientProfile_TimelineLimit(t *testing.T) {
	docs := make([]domain.Document, 0, 15)
	for i := 0; i < 15; i++ {
		docs = append(docs, domain.Document{DocumentID: fmt.Sprintf("D%02d", i), RUTPaciente: "P1"})
	}

	profile, ok := BuildPatientProfile(docs, "P1")
	require.True(t, ok)
	assert.Equal(t, 15, profile.TotalDocs)
	require.Len(t, profile.Timeline, TimelineLimit)
	assert.Equal(t, "D00", profile.Timeline[0].DocumentID)
	assert.Equal(t, "D09", profile.Timeline[9].DocumentID)
}

func TestBuildPatientProfile_NotFound(t *testing.T) {
	_, ok := BuildPatientProfile([]domain.Document{{DocumentID: "a", RUTPaciente: "P1"}}, "P9")
	assert.False(t, ok)

	_, ok = BuildPatientProfile([]domain.Document{{DocumentID: "a"}}, "")
	assert.False(t, ok)
}
