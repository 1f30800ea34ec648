package api

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
	// MaxTimeoutMS is the longest search the server will run; zero means
	// searches are uncapped.
	MaxTimeoutMS int64 `json:"max_timeout_ms"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		MaxTimeoutMS: s.engine.MaxTimeout().Milliseconds(),
	})
}
