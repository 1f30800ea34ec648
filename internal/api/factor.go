package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/factor/internal/engine"
	"github.com/seantiz/factor/internal/factor"
	"github.com/seantiz/factor/internal/input"
	"github.com/seantiz/factor/internal/model"
)

const maxBodySize = 1 << 12 // 4 KB

// factorRequest is the JSON body for POST /v1/factor. Both fields accept
// either a JSON string or a JSON number.
type factorRequest struct {
	Number  json.RawMessage `json:"number"`
	Timeout json.RawMessage `json:"timeout"`
}

func (s *Server) handleGetFactor(w http.ResponseWriter, r *http.Request) {
	s.factor(w, r, chi.URLParam(r, "n"), r.URL.Query().Get("timeout"))
}

func (s *Server) handlePostFactor(w http.ResponseWriter, r *http.Request) {
	var req factorRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	number, err := rawText(req.Number)
	if err != nil || number == "" {
		s.writeError(w, http.StatusBadRequest, "number is required")
		return
	}
	timeout, err := rawText(req.Timeout)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "timeout must be a string or a number")
		return
	}

	s.factor(w, r, number, timeout)
}

// factor validates the textual inputs, runs the search and writes the run.
func (s *Server) factor(w http.ResponseWriter, r *http.Request, number, timeout string) {
	n, err := input.ParseNumber(number)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := engine.Request{Number: n}
	if timeout != "" {
		d, err := input.ParseTimeout(timeout)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Timeout = d
		req.HasTimeout = true
	}

	run, err := s.engine.Run(r.Context(), req)
	if errors.Is(err, factor.ErrDomain) {
		s.writeJSON(w, http.StatusUnprocessableEntity, run)
		return
	}
	if err != nil && !errors.Is(err, factor.ErrTimeout) {
		s.logger.Error("factor", "run_id", run.ID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "factorization failed")
		return
	}
	if err := checkFactors(run); err != nil {
		s.logger.Error("factor self-check", "run_id", run.ID, "input", run.Input, "error", err)
		s.writeError(w, http.StatusInternalServerError, "factorization failed self-check")
		return
	}

	s.writeJSON(w, http.StatusOK, run)
}

// checkFactors verifies a run against its input before it is served. The
// factors of a composite must multiply back to the input, and the partial
// factors of a timed-out run must divide it.
func checkFactors(run *model.Run) error {
	switch run.Outcome {
	case factor.OutcomeComposite:
		p, ok := factor.Product(run.Factors)
		if !ok || p != run.Input || len(run.Factors) < 2 {
			return fmt.Errorf("factors %v do not multiply to %d", run.Factors, run.Input)
		}
	case factor.OutcomeTimeout:
		p, ok := factor.Product(run.Partial)
		if !ok || run.Input%p != 0 {
			return fmt.Errorf("partial factors %v do not divide %d", run.Partial, run.Input)
		}
	}
	return nil
}

// rawText returns the contents of a JSON string, or the literal text of any
// other JSON value. An absent or null value yields "".
func rawText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if raw[0] == '{' || raw[0] == '[' {
		return "", errors.New("unexpected JSON value")
	}
	return string(raw), nil
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
