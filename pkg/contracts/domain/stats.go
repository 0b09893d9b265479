package domain

// MonthlyStats is the aggregate summary of a document collection for one month.
// It is always recomputed from documents and never persisted.
type MonthlyStats struct {
	Year                      int            `json:"year"`
	Month                     int            `json:"month"`
	TotalDocuments            int            `json:"total_documents"`
	SuccessfulDocuments       int            `json:"successful_documents"`
	ErrorDocuments            int            `json:"error_documents"`
	ErrorRate                 float64        `json:"error_rate"`
	SuccessRate               float64        `json:"success_rate"`
	AvgInferenceTime          float64        `json:"avg_inference_time"`
	TotalPatients             int            `json:"total_patients"`
	TotalDoctors              int            `json:"total_doctors"`
	DocumentsByType           map[string]int `json:"documents_by_type"`
	DocumentsByClassification map[string]int `json:"documents_by_classification"`
	DailyCounts               []DailyCount   `json:"daily_counts"`
	ErrorsByType              map[string]int `json:"errors_by_type"`

	// IsPlaceholder is set when no document matched the month and the
	// demo totals were substituted.
	IsPlaceholder bool `json:"is_placeholder"`
	// DailyCountsSynthetic is set when DailyCounts was fabricated rather
	// than counted.
	DailyCountsSynthetic bool `json:"daily_counts_synthetic"`
}

// DailyCount is the number of documents processed on one calendar day.
type DailyCount struct {
	Day   int    `json:"day"`
	Date  string `json:"date,omitempty"`
	Count int    `json:"count"`
}

// DoctorStats summarizes the documents attributed to one doctor.
type DoctorStats struct {
	RUT            string  `json:"rut"`
	Nombre         string  `json:"nombre"`
	Documentos     int     `json:"documentos"`
	Pacientes      int     `json:"pacientes"`
	TasaExito      float64 `json:"tasa_exito"`
	TiempoPromedio int     `json:"tiempo_promedio"`
}

// DoctorSummary aggregates DoctorStats across all doctors.
type DoctorSummary struct {
	TotalDoctors     int     `json:"total_doctors"`
	AvgDocsPerDoctor float64 `json:"avg_docs_per_doctor"`
	AvgSuccessRate   float64 `json:"avg_success_rate"`
	AvgTime          float64 `json:"avg_time"`
}

// PatientSummary is one entry of the patient listing.
type PatientSummary struct {
	RUT       string `json:"rut"`
	Nombre    string `json:"nombre"`
	TotalDocs int    `json:"total_docs"`
}

// PatientProfile is the detail view of one patient.
type PatientProfile struct {
	RUT               string     `json:"rut"`
	Nombre            string     `json:"nombre"`
	TotalDocs         int        `json:"total_docs"`
	UniqueDoctors     int        `json:"unique_doctors"`
	TotalPrestaciones int        `json:"total_prestaciones"`
	ErrorCount        int        `json:"error_count"`
	Timeline          []Document `json:"timeline"`
}

// PrestacionCount is the frequency of one prestacion description.
type PrestacionCount struct {
	Descripcion string `json:"descripcion"`
	Count       int    `json:"count"`
}

// PrestacionCategory groups prestaciones by clinical area.
type PrestacionCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PrestacionesSummary is the prestaciones breakdown view.
type PrestacionesSummary struct {
	Total         int                  `json:"total"`
	Unique        int                  `json:"unique"`
	AvgPerDoc     float64              `json:"avg_per_doc"`
	AvgScore      float64              `json:"avg_score"`
	LowConfidence int                  `json:"low_confidence"`
	Top           []PrestacionCount    `json:"top"`
	Categories    []PrestacionCategory `json:"categories"`
}

// ActivityType classifies an entry of the recent activity feed.
type ActivityType string

const (
	ActivitySuccess ActivityType = "success"
	ActivityError   ActivityType = "error"
	ActivityInfo    ActivityType = "info"
)

// Activity is one entry of the recent activity feed.
type Activity struct {
	Time   string       `json:"time"`
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Type   ActivityType `json:"type"`
}
