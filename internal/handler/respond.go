package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// validate se comparte entre todos los handlers (es thread-safe).
var validate = validator.New()

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError mapea la taxonomía del core a códigos HTTP. Nada de tragarse
// errores: lo que el core devuelve, sale estructurado.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindPermission:
		status = http.StatusForbidden
	case apperr.KindTimeout:
		status = http.StatusGatewayTimeout
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("error no clasificado")
	}

	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  apperr.KindOf(err).String(),
	})
}

// decodeBody decodea el JSON del request y corre las reglas `validate` del
// struct. Un solo paso de validación en el borde, nada de defaults mudos.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, apperr.Validation("body inválido: %v", err))
		return false
	}
	if err := validate.Struct(dest); err != nil {
		writeError(w, apperr.Validation("body inválido: %v", err))
		return false
	}
	return true
}
