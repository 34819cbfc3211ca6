package v1handler

import "net/http"

type messageResponse struct {
	Message string `json:"message"`
}

// Root greets callers of the bare host.
func (h Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Hello from the Smart Site backend!"})
}

func (h Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}

// Test reports backend and database reachability. It always answers 200.
func (h Handler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.deps.Reporter.Report(r.Context()))
}
