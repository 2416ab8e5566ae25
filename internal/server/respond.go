package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/learn"
)

// errorBody is the error payload. Options is only set for ambiguous titles.
type errorBody struct {
	Error   string   `json:"error"`
	Options []string `json:"options,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeFailure renders err as data. Source lookups that found nothing
// usable are ordinary answers and use 200.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var fe *failure.Error
	if errors.As(err, &fe) {
		body := errorBody{Error: fe.Message, Options: fe.Candidates}
		writeJSON(w, statusFor(fe.Kind), body)
		if fe.Kind == failure.KindProviderError || fe.Kind == failure.KindMalformedProviderOutput {
			s.logger.Warn("generation failed",
				zap.String("path", r.URL.Path),
				zap.String("kind", string(fe.Kind)),
				zap.Error(err))
		}
		return
	}
	if errors.Is(err, learn.ErrQuizNotFound) {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func statusFor(kind failure.Kind) int {
	switch kind {
	case failure.KindAmbiguousSource, failure.KindSourceNotFound:
		return http.StatusOK
	case failure.KindInvalidLocator, failure.KindEmptyExtractedText:
		return http.StatusBadRequest
	case failure.KindProviderError, failure.KindMalformedProviderOutput:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
