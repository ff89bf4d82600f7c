package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/internal/service/campaign"
)

// campaignService defines the minimal interface needed by CampaignHandler.
type campaignService interface {
	Create(ctx context.Context, input campaign.CreateCampaignInput) (*domain.Campaign, error)
	GetStatus(ctx context.Context, campaignID uuid.UUID) (*campaign.Status, error)
	ListInvestors(ctx context.Context, campaignID uuid.UUID, limit int) ([]campaign.Investor, error)
	Contribute(ctx context.Context, input campaign.ContributeInput) (*domain.Campaign, error)
	Refund(ctx context.Context, campaignID uuid.UUID) (domain.Amount, error)
	Close(ctx context.Context, input campaign.CloseInput) (*campaign.CloseResult, error)
	Distribute(ctx context.Context, input campaign.DistributeInput) (*campaign.DistributionResult, error)
	Deposit(ctx context.Context, input campaign.DepositInput) error
}

// CampaignHandler serves campaign REST endpoints.
type CampaignHandler struct {
	svc campaignService
	log *slog.Logger
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc campaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, log: logger.With("handler", "campaign")}
}

type createCampaignRequest struct {
	Description string    `json:"description"`
	FeePercent  int       `json:"feePercent"`
	SoftCap     string    `json:"softCap"`
	HardCap     string    `json:"hardCap"`
	ClosingTime time.Time `json:"closingTime"`
}

type contributeRequest struct {
	Amount string `json:"amount"`
}

type closeRequest struct {
	Mode string `json:"mode"`
}

type distributeRequest struct {
	Asset string `json:"asset"`
}

type depositRequest struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type campaignResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	FeePercent  int       `json:"feePercent"`
	SoftCap     string    `json:"softCap"`
	HardCap     string    `json:"hardCap"`
	ClosingTime time.Time `json:"closingTime"`
	TotalRaised string    `json:"totalRaised"`
	CloseState  string    `json:"closeState"`
}

type statusResponse struct {
	campaignResponse
	IsClosed       bool   `json:"isClosed"`
	InvestorCount  int    `json:"investorCount"`
	MyContribution string `json:"myContribution"`
}

type investorResponse struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
}

type refundResponse struct {
	Refunded string `json:"refunded"`
}

type closeResponse struct {
	CloseState string `json:"closeState"`
	Withdrawn  string `json:"withdrawn,omitempty"`
	Refunds    int    `json:"refunds"`
}

type distributionResponse struct {
	Asset       string `json:"asset"`
	Distributed string `json:"distributed"`
	Payouts     int    `json:"payouts"`
}

// Create handles POST /api/v1/campaigns.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	softCap, err := domain.ParseAmount(req.SoftCap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid soft cap")
		return
	}
	hardCap, err := domain.ParseAmount(req.HardCap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hard cap")
		return
	}

	c, err := h.svc.Create(r.Context(), campaign.CreateCampaignInput{
		Description: req.Description,
		FeePercent:  req.FeePercent,
		SoftCap:     softCap,
		HardCap:     hardCap,
		ClosingTime: req.ClosingTime,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

// Status handles GET /api/v1/campaigns/{id}.
func (h *CampaignHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.svc.GetStatus(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatusResponse(status))
}

// Investors handles GET /api/v1/campaigns/{id}/investors.
func (h *CampaignHandler) Investors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	investors, err := h.svc.ListInvestors(r.Context(), id, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]investorResponse, len(investors))
	for i, inv := range investors {
		out[i] = investorResponse{
			AccountID: inv.AccountID.String(),
			Amount:    inv.Amount.String(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"investors": out})
}

// Contribute handles POST /api/v1/campaigns/{id}/contributions.
func (h *CampaignHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	c, err := h.svc.Contribute(r.Context(), campaign.ContributeInput{
		CampaignID: id,
		Amount:     amount,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

// Refund handles POST /api/v1/campaigns/{id}/refund.
func (h *CampaignHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	refunded, err := h.svc.Refund(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refundResponse{Refunded: refunded.String()})
}

// Close handles POST /api/v1/campaigns/{id}/close.
func (h *CampaignHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Close(r.Context(), campaign.CloseInput{
		CampaignID: id,
		Mode:       campaign.CloseMode(req.Mode),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := closeResponse{
		CloseState: result.Close.String(),
		Refunds:    result.Refunds,
	}
	if !result.Withdrawn.IsZero() {
		resp.Withdrawn = result.Withdrawn.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Distribute handles POST /api/v1/campaigns/{id}/distributions.
func (h *CampaignHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset, err := domain.ParseAssetID(req.Asset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset")
		return
	}

	result, err := h.svc.Distribute(r.Context(), campaign.DistributeInput{
		CampaignID: id,
		Asset:      asset,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, distributionResponse{
		Asset:       result.Asset.String(),
		Distributed: result.Distributed.String(),
		Payouts:     result.Payouts,
	})
}

// Deposit handles POST /api/v1/campaigns/{id}/deposits.
func (h *CampaignHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset, err := domain.ParseAssetID(req.Asset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset")
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	if err := h.svc.Deposit(r.Context(), campaign.DepositInput{
		CampaignID: id,
		Asset:      asset,
		Amount:     amount,
	}); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CampaignHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotOpen),
		errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrCapExceeded),
		errors.Is(err, domain.ErrSoftCapNotReached),
		errors.Is(err, domain.ErrSoftCapReached):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTransferFailed),
		errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return uuid.Nil, false
	}
	return id, true
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:          c.ID.String(),
		Description: c.Config.Description,
		Owner:       c.Owner.String(),
		FeePercent:  c.Config.FeePercent,
		SoftCap:     c.Config.SoftCap.String(),
		HardCap:     c.Config.HardCap.String(),
		ClosingTime: c.Config.ClosingTime,
		TotalRaised: c.TotalRaised().String(),
		CloseState:  c.Close.String(),
	}
}

func toStatusResponse(s *campaign.Status) statusResponse {
	return statusResponse{
		campaignResponse: campaignResponse{
			ID:          s.ID.String(),
			Description: s.Description,
			Owner:       s.Owner.String(),
			FeePercent:  s.FeePercent,
			SoftCap:     s.SoftCap.String(),
			HardCap:     s.HardCap.String(),
			ClosingTime: s.ClosingTime,
			TotalRaised: s.TotalRaised.String(),
			CloseState:  s.Close.String(),
		},
		IsClosed:       s.IsClosed,
		InvestorCount:  s.InvestorCount,
		MyContribution: s.MyContribution.String(),
	}
}
