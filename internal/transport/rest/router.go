package rest

import (
	"net/http"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Account  *AccountHandler
	Campaign *CampaignHandler
	Holding  *HoldingHandler
}

// NewRouter mounts all REST routes on a fresh mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", h.Account.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Account.Login)
	mux.HandleFunc("GET /api/v1/accounts/me", h.Account.Me)
	mux.HandleFunc("GET /api/v1/accounts/me/holdings", h.Holding.List)

	mux.HandleFunc("POST /api/v1/campaigns", h.Campaign.Create)
	mux.HandleFunc("GET /api/v1/campaigns/{id}", h.Campaign.Status)
	mux.HandleFunc("GET /api/v1/campaigns/{id}/investors", h.Campaign.Investors)
	mux.HandleFunc("POST /api/v1/campaigns/{id}/contributions", h.Campaign.Contribute)
	mux.HandleFunc("POST /api/v1/campaigns/{id}/refund", h.Campaign.Refund)
	mux.HandleFunc("POST /api/v1/campaigns/{id}/close", h.Campaign.Close)
	mux.HandleFunc("POST /api/v1/campaigns/{id}/distributions", h.Campaign.Distribute)
	mux.HandleFunc("POST /api/v1/campaigns/{id}/deposits", h.Campaign.Deposit)

	return mux
}
