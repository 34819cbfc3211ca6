package v1handler

import (
	"net/http"
	"smartsite/pkg/domain"
	"smartsite/pkg/schema"
)

const statusOK = "ok"

type leadResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type demoResponse struct {
	Status     string        `json:"status"`
	ID         string        `json:"id"`
	Transcript []domain.Turn `json:"transcript"`
}

// CreateLead validates and stores a contact-form lead.
func (h Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	lead, err := schema.Lead(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	id, err := h.deps.Leads.CaptureLead(r.Context(), lead)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, leadResponse{Status: statusOK, ID: id})
}

// CreateDemo validates and stores a demo request, answering with the scripted
// conversation.
func (h Handler) CreateDemo(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	req, err := schema.DemoRequest(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	demo, err := h.deps.Leads.RequestDemo(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, demoResponse{
		Status:     statusOK,
		ID:         demo.ID,
		Transcript: demo.Transcript,
	})
}
