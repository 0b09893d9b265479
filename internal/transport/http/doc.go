// Package http implements the JSON API of the dashboard.
//
// Handlers are thin: they parse and validate query parameters, call the
// dashboard service and render the result. Successful responses use the
// envelope {"status":"success","data":...}, except GET /api/data which keeps
// the {documents, stats} body consumed by the dashboard frontend. Errors are
// RFC 7807 problem documents written by the shared ErrorHandler; service
// sentinels are mapped with RegisterErrorMappings.
//
// Routes mounted under /api:
//
//	GET /data
//	GET /stats?year=&month=
//	GET /documents?search=&fecha_inicio=&fecha_fin=&tipo_documento=&rut_medico=&rut_paciente=&only_errors=&page=&per_page=
//	GET /documents/export?format=csv|xlsx&<filters>
//	GET /doctors
//	GET /patients
//	GET /patients/{rut}
//	GET /prestaciones
//	GET /activities?limit=
//	GET /health, /health/live, /health/ready
//	GET /version
package http
