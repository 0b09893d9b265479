package dataprocessing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"meddash/pkg/contracts/domain"
)

// prestacionItem is one element of the typed-attribute array stored in the
// prestaciones column: [{"M":{"description":{"S":..},"codigo_prest_sugerida":{"S":..},"score":{"N":..}}}]
type prestacionItem struct {
	M *struct {
		Description attributeValue `json:"description"`
		Codigo      attributeValue `json:"codigo_prest_sugerida"`
		Score       attributeValue `json:"score"`
	} `json:"M"`
}

type attributeValue struct {
	S looseString `json:"S"`
	N looseString `json:"N"`
}

// looseString accepts a JSON string or a bare scalar and keeps its text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	*s = looseString(data)
	return nil
}

// ParsePrestaciones decodes the prestaciones cell of one row. Empty input,
// the literal "null" and anything that fails to decode yield an empty,
// non-nil slice.
func ParsePrestaciones(raw string) []domain.Prestacion {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []domain.Prestacion{}
	}

	items, ok := decodePrestacionItems(raw)
	if !ok && strings.Contains(raw, `""`) {
		items, ok = decodePrestacionItems(strings.ReplaceAll(raw, `""`, `"`))
	}
	if !ok {
		return []domain.Prestacion{}
	}

	result := make([]domain.Prestacion, 0, len(items))
	for _, item := range items {
		if item.M == nil {
			continue
		}
		result = append(result, domain.Prestacion{
			Descripcion: string(item.M.Description.S),
			Codigo:      string(item.M.Codigo.S),
			Score:       parseScore(string(item.M.Score.N)),
		})
	}
	return result
}

func decodePrestacionItems(text string) ([]prestacionItem, bool) {
	var items []prestacionItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, false
	}
	return items, true
}

func parseScore(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
