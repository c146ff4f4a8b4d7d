package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"crowdfund/internal/domain"
)

const maxContributionBody = 1 << 10

type contributionRequest struct {
	Amount *domain.Amount `json:"amount"`
}

type totalResponse struct {
	Total domain.Amount `json:"total"`
}

func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContributionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, domain.ErrMalformedAmount) {
			a.error(w, http.StatusBadRequest, "bad_request", "amount must be an integer")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, "bad_request", "payload must be a single JSON object")
		return
	}
	if req.Amount == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "amount required")
		return
	}

	total, err := a.Ledger.Contribute(r.Context(), *req.Amount)
	switch {
	case err == nil:
		a.json(w, http.StatusOK, totalResponse{Total: total})
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be positive")
	case errors.Is(err, domain.ErrArithmeticOverflow):
		a.error(w, http.StatusUnprocessableEntity, "overflow", "total would exceed the supported range")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "failed to record contribution")
	}
}

func (a *App) TotalGet(w http.ResponseWriter, r *http.Request) {
	total, err := a.Ledger.Total(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load total")
		return
	}
	a.json(w, http.StatusOK, totalResponse{Total: total})
}
