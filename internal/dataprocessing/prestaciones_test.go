package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meddash/pkg/contracts/domain"
)

func TestParsePrestaciones(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.Prestacion
	}{
		{name: "empty", raw: "", want: []domain.Prestacion{}},
		{name: "null literal", raw: "null", want: []domain.Prestacion{}},
		{
			name: "single item",
			raw:  `[{"M":{"description":{"S":"HEMOGRAMA"},"codigo_prest_sugerida":{"S":"0301045"},"score":{"N":"0.87"}}}]`,
			want: []domain.Prestacion{{Descripcion: "HEMOGRAMA", Codigo: "0301045", Score: 0.87}},
		},
		{
			name: "doubled quotes",
			raw:  `[{""M"":{""description"":{""S"":""TSH""},""codigo_prest_sugerida"":{""S"":""0302076""},""score"":{""N"":""0.91""}}}]`,
			want: []domain.Prestacion{{Descripcion: "TSH", Codigo: "0302076", Score: 0.91}},
		},
		{
			name: "empty strings survive when quotes are not doubled",
			raw:  `[{"M":{"description":{"S":""},"codigo_prest_sugerida":{"S":"X"},"score":{"N":"0.5"}}}]`,
			want: []domain.Prestacion{{Descripcion: "", Codigo: "X", Score: 0.5}},
		},
		{
			name: "numeric score",
			raw:  `[{"M":{"description":{"S":"VHS"},"codigo_prest_sugerida":{"S":"1"},"score":{"N":0.4}}}]`,
			want: []domain.Prestacion{{Descripcion: "VHS", Codigo: "1", Score: 0.4}},
		},
		{
			name: "invalid score coerces to zero",
			raw:  `[{"M":{"description":{"S":"VHS"},"codigo_prest_sugerida":{"S":"1"},"score":{"N":"n/a"}}}]`,
			want: []domain.Prestacion{{Descripcion: "VHS", Codigo: "1", Score: 0}},
		},
		{
			name: "missing attributes",
			raw:  `[{"M":{}}]`,
			want: []domain.Prestacion{{}},
		},
		{
			name: "items without wrapper are skipped",
			raw:  `[{"X":{}},{"M":{"description":{"S":"ORINA"}}}]`,
			want: []domain.Prestacion{{Descripcion: "ORINA"}},
		},
		{name: "malformed json", raw: `[{"M":`, want: []domain.Prestacion{}},
		{name: "object instead of array", raw: `{"M":{}}`, want: []domain.Prestacion{}},
		{name: "plain text", raw: "HEMOGRAMA", want: []domain.Prestacion{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrestaciones(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrestaciones_MultipleItems(t *testing.T) {
	raw := `[{"M":{"description":{"S":"PERFIL LIPIDICO"},"codigo_prest_sugerida":{"S":"0302034"},"score":{"N":"0.95"}}},` +
		`{"M":{"description":{"S":"GLICEMIA"},"codigo_prest_sugerida":{"S":"0302047"},"score":{"N":"0.66"}}}]`

	got := ParsePrestaciones(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "PERFIL LIPIDICO", got[0].Descripcion)
	assert.Equal(t, "GLICEMIA", got[1].Descripcion)
	assert.InDelta(t, 0.66, got[1].Score, 1e-9)
}
