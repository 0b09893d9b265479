package dataprocessing

import (
	"fmt"
	"sort"
	"time"

	"meddash/pkg/contracts/domain"
)

// DefaultActivityLimit is the length of the recent activity feed.
const DefaultActivityLimit = 4

// demoActivities is shown when there are no documents to derive a feed from.
var demoActivities = []domain.Activity{
	{Time: "14:32", Title: "Solicitud de Examen procesada", Detail: "Paciente: María González • Dr. Roberto Sánchez • Exitoso", Type: domain.ActivitySuccess},
	{Time: "14:28", Title: "Error en procesamiento", Detail: "Receta médica • Score: 0.65 • Revisión manual requerida", Type: domain.ActivityError},
	{Time: "14:15", Title: "15 prestaciones identificadas", Detail: "Perfil completo • Dra. Patricia López • Tiempo: 28ms", Type: domain.ActivityInfo},
	{Time: "14:02", Title: "Resultados de laboratorio", Detail: "8 documentos procesados • 100% precisión • 22ms promedio", Type: domain.ActivitySuccess},
}

// DemoActivities returns a copy of the fixed demo feed.
func DemoActivities() []domain.Activity {
	return append([]domain.Activity(nil), demoActivities...)
}

type timedDocument struct {
	doc domain.Document
	at  time.Time
}

// RecentActivities derives up to limit feed entries from the most recently
// processed documents. Documents with an unparseable date_time are ignored.
func RecentActivities(docs []domain.Document, now time.Time, limit int) []domain.Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	timed := make([]timedDocument, 0, len(docs))
	for _, doc := range docs {
		if at, ok := ParseTimestamp(doc.DateTime); ok {
			timed = append(timed, timedDocument{doc: doc, at: at})
		}
	}
	if len(timed) == 0 {
		feed := DemoActivities()
		if len(feed) > limit {
			feed = feed[:limit]
		}
		return feed
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].at.After(timed[j].at)
	})
	if len(timed) > limit {
		timed = timed[:limit]
	}

	feed := make([]domain.Activity, 0, len(timed))
	for _, td := range timed {
		feed = append(feed, activityFor(td.doc, td.at, now))
	}
	return feed
}

func activityFor(doc domain.Document, at, now time.Time) domain.Activity {
	tipo := doc.TipoDocumento
	if tipo == "" {
		tipo = "Documento"
	}

	if doc.Error {
		detail := fmt.Sprintf("%s • %s • Revisión manual requerida", tipo, doc.DocumentID)
		if doc.Message != nil {
			detail = fmt.Sprintf("%s • %s • %s", tipo, doc.DocumentID, *doc.Message)
		}
		return domain.Activity{
			Time:   RelativeTime(at, now),
			Title:  "Error en procesamiento",
			Detail: detail,
			Type:   domain.ActivityError,
		}
	}

	return domain.Activity{
		Time:   RelativeTime(at, now),
		Title:  fmt.Sprintf("%s procesada", tipo),
		Detail: fmt.Sprintf("Paciente: %s • %s • %d prestaciones • %dms", doc.NombrePaciente, doc.NombreMedico, len(doc.Prestaciones), doc.InferenceTime),
		Type:   domain.ActivitySuccess,
	}
}

// RelativeTime renders the distance between at and now as a Spanish label.
func RelativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "Ahora"
	case d < time.Hour:
		return fmt.Sprintf("Hace %d min", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("Hace %d horas", int(d/time.Hour))
	default:
		return fmt.Sprintf("Hace %d días", int(d/(24*time.Hour)))
	}
}
