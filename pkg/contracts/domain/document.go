package domain

// Document is one processed medical record read from the CSV snapshot.
// Values are immutable once parsed.
type Document struct {
	DocumentID     string       `json:"document_id"`
	TipoDocumento  string       `json:"tipo_documento"`
	Clasificacion  string       `json:"clasificacion"`
	NombrePaciente string       `json:"nombre_paciente"`
	RUTPaciente    string       `json:"RUT_paciente"`
	NombreMedico   string       `json:"nombre_medico"`
	RUTMedico      string       `json:"RUT_medico"`
	FechaExamen    string       `json:"fecha_examen"`
	DateTime       string       `json:"date_time"`
	Error          bool         `json:"error"`
	InferenceTime  int          `json:"inference_time"`
	Message        *string      `json:"message"`
	Prestaciones   []Prestacion `json:"prestaciones"`
}

// Prestacion is a medical service identified inside a document.
type Prestacion struct {
	Descripcion string  `json:"descripcion"`
	Codigo      string  `json:"codigo"`
	Score       float64 `json:"score"`
}

// DocumentFilter narrows a document list. Zero values disable a criterion.
type DocumentFilter struct {
	Search        string `json:"search,omitempty" validate:"max=200"`
	FechaInicio   string `json:"fecha_inicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FechaFin      string `json:"fecha_fin,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TipoDocumento string `json:"tipo_documento,omitempty" validate:"max=100"`
	RUTMedico     string `json:"rut_medico,omitempty" validate:"max=20"`
	RUTPaciente   string `json:"rut_paciente,omitempty" validate:"max=20"`
	OnlyErrors    bool   `json:"only_errors,omitempty"`
}

// Page is one page of a paginated document list.
type Page struct {
	Items       []Document `json:"items"`
	CurrentPage int        `json:"current_page"`
	PerPage     int        `json:"per_page"`
	TotalItems  int        `json:"total_items"`
	TotalPages  int        `json:"total_pages"`
	HasNext     bool       `json:"has_next"`
	HasPrev     bool       `json:"has_prev"`
}

// DashboardData is the payload of the combined data endpoint.
type DashboardData struct {
	Documents []Document   `json:"documents"`
	Stats     MonthlyStats `json:"stats"`
}
