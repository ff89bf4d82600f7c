package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/holding"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// holdingLister defines the minimal interface needed by HoldingHandler.
type holdingLister interface {
	ListByHolder(ctx context.Context, holder uuid.UUID, asset *domain.AssetID) ([]holding.Holding, error)
}

// HoldingHandler serves the caller's asset balances.
type HoldingHandler struct {
	holdings holdingLister
	log      *slog.Logger
}

// NewHoldingHandler creates a HoldingHandler.
func NewHoldingHandler(holdings holdingLister, logger *slog.Logger) *HoldingHandler {
	return &HoldingHandler{holdings: holdings, log: logger.With("handler", "holding")}
}

type holdingResponse struct {
	Asset   string `json:"asset"`
	Balance string `json:"balance"`
	Frozen  bool   `json:"frozen"`
}

// List handles GET /api/v1/accounts/me/holdings. An optional ?asset= query
// narrows the listing to one asset.
func (h *HoldingHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ctxutil.AccountIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var assetFilter *domain.AssetID
	if raw := r.URL.Query().Get("asset"); raw != "" {
		asset, err := domain.ParseAssetID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid asset")
			return
		}
		assetFilter = &asset
	}

	holdings, err := h.holdings.ListByHolder(r.Context(), accountID, assetFilter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]holdingResponse, len(holdings))
	for i, hld := range holdings {
		out[i] = holdingResponse{
			Asset:   hld.Asset.String(),
			Balance: hld.Balance.String(),
			Frozen:  hld.Frozen,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"holdings": out})
}
