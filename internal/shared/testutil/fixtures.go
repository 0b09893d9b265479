package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleCSVHeader is the column order of the dashboard export.
const SampleCSVHeader = "document_id,tipo_documento,clasificacion,nombre_paciente,RUT_paciente,nombre_medico,RUT_medico,fecha_examen,date_time,error,inference_time,message,prestaciones"

// SampleCSVRows holds three November 2024 documents: two successful from
// Dra. Soto and one failed from Dr. Pérez.
var SampleCSVRows = []string{
	`DOC-001,Orden de examen,Laboratorio,Ana Rojas,11.111.111-1,Dra. Soto,22.222.222-2,2024-11-04,2024-11-04 09:15:00,false,24,null,"[{""M"":{""description"":{""S"":""HEMOGRAMA""},""codigo_prest_sugerida"":{""S"":""0301045""},""score"":{""N"":""0.91""}}}]"`,
	`DOC-002,Receta,Farmacia,Luis Díaz,33.333.333-3,Dra. Soto,22.222.222-2,2024-11-05,2024-11-05 10:30:00,false,30,null,[]`,
	`DOC-003,Orden de examen,Laboratorio,Ana Rojas,11.111.111-1,Dr. Pérez,44.444.444-4,2024-11-06,2024-11-06 11:45:00,true,40,timeout en OCR,[]`,
}

// SampleCSV returns the header plus SampleCSVRows.
func SampleCSV() string {
	return SampleCSVHeader + "\n" + strings.Join(SampleCSVRows, "\n") + "\n"
}

// WriteFile writes content under a fresh temp directory and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
