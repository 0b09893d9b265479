package http

import (
	"net/http"

	"github.com/go-chi/render"

	apierrors "meddash/internal/errors"
	"meddash/internal/services"
)

// Response is the success envelope of every endpoint except /api/data.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, Response{Status: "success", Data: data})
}

// RegisterErrorMappings maps service sentinel errors to problem types.
func RegisterErrorMappings(h *apierrors.ErrorHandler) *apierrors.ErrorHandler {
	return h.
		Map(services.ErrPatientNotFound, http.StatusNotFound, apierrors.TypePatientNotFound, "Patient Not Found").
		Map(services.ErrInvalidPeriod, http.StatusBadRequest, apierrors.TypeInvalidPeriod, "Invalid Period").
		Map(services.ErrUnsupportedFormat, http.StatusBadRequest, apierrors.TypeUnsupportedFormat, "Unsupported Export Format").
		Map(services.ErrDataUnavailable, http.StatusServiceUnavailable, apierrors.TypeDataUnavailable, "Data Unavailable")
}
