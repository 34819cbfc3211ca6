package v1handler

import (
	"net/http"
	"smartsite/pkg/domain"
	"smartsite/pkg/schema"
)

// Calculate projects the revenue lift for the posted funnel numbers.
func (h Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	in, err := schema.CalculatorInput(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, domain.Calculate(in))
}
