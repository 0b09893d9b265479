package http

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "meddash/internal/errors"
	"meddash/pkg/contracts/domain"
)

// DocumentQuery is the parsed query of the documents endpoints.
type DocumentQuery struct {
	domain.DocumentFilter
	Page    int `json:"page" validate:"omitempty,min=1"`
	PerPage int `json:"per_page" validate:"omitempty,min=1,max=100"`
}

// StatsQuery selects a statistics period. Zero values use the configured one.
type StatsQuery struct {
	Year  int `json:"year" validate:"omitempty,min=1900,max=9999"`
	Month int `json:"month" validate:"omitempty,min=1,max=12"`
}

// ExportQuery is the parsed query of the export endpoint.
type ExportQuery struct {
	domain.DocumentFilter
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// ActivitiesQuery limits the activity feed.
type ActivitiesQuery struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=50"`
}

// QueryParser converts query strings into validated query structs.
type QueryParser struct {
	validate *validator.Validate
}

// NewQueryParser creates a parser whose validation errors name fields by
// their query parameter.
func NewQueryParser() *QueryParser {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryParser{validate: v}
}

// Documents parses the documents list query.
func (p *QueryParser) Documents(q url.Values) (DocumentQuery, error) {
	filter, err := parseFilter(q)
	if err != nil {
		return DocumentQuery{}, err
	}
	query := DocumentQuery{DocumentFilter: filter}
	if query.Page, err = intParam(q, "page"); err != nil {
		return DocumentQuery{}, err
	}
	if query.PerPage, err = intParam(q, "per_page"); err != nil {
		return DocumentQuery{}, err
	}
	return query, p.check(query)
}

// Stats parses the statistics period query.
func (p *QueryParser) Stats(q url.Values) (StatsQuery, error) {
	var (
		query StatsQuery
		err   error
	)
	if query.Year, err = intParam(q, "year"); err != nil {
		return StatsQuery{}, err
	}
	if query.Month, err = intParam(q, "month"); err != nil {
		return StatsQuery{}, err
	}
	return query, p.check(query)
}

// Export parses the export query.
func (p *QueryParser) Export(q url.Values) (ExportQuery, error) {
	filter, err := parseFilter(q)
	if err != nil {
		return ExportQuery{}, err
	}
	query := ExportQuery{
		DocumentFilter: filter,
		Format:         strings.ToLower(strings.TrimSpace(q.Get("format"))),
	}
	return query, p.check(query)
}

// Activities parses the activity feed query.
func (p *QueryParser) Activities(q url.Values) (ActivitiesQuery, error) {
	limit, err := intParam(q, "limit")
	if err != nil {
		return ActivitiesQuery{}, err
	}
	query := ActivitiesQuery{Limit: limit}
	return query, p.check(query)
}

func (p *QueryParser) check(query interface{}) error {
	err := p.validate.Struct(query)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.ErrInvalidQuery
	}

	details := make([]apierrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apierrors.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return apierrors.InvalidFields(details...)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in the form %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func parseFilter(q url.Values) (domain.DocumentFilter, error) {
	onlyErrors, err := boolParam(q, "only_errors")
	if err != nil {
		return domain.DocumentFilter{}, err
	}
	return domain.DocumentFilter{
		Search:        strings.TrimSpace(q.Get("search")),
		FechaInicio:   strings.TrimSpace(q.Get("fecha_inicio")),
		FechaFin:      strings.TrimSpace(q.Get("fecha_fin")),
		TipoDocumento: strings.TrimSpace(q.Get("tipo_documento")),
		RUTMedico:     strings.TrimSpace(q.Get("rut_medico")),
		RUTPaciente:   strings.TrimSpace(q.Get("rut_paciente")),
		OnlyErrors:    onlyErrors,
	}, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.InvalidParameter(name, err)
	}
	return v, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierrors.InvalidParameter(name, err)
	}
	return v, nil
}
