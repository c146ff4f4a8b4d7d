package handlers

import (
	"encoding/json"
	"net/http"

	"crowdfund/internal/infra"
	"crowdfund/internal/ledger"
)

type App struct {
	Config *infra.Config
	Logger infra.Logger
	Ledger *ledger.Service
}

func NewApp(cfg *infra.Config, logger infra.Logger, svc *ledger.Service) *App {
	return &App{Config: cfg, Logger: logger, Ledger: svc}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}
