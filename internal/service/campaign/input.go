package campaign

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// CreateCampaignInput holds the parameters for creating a campaign.
type CreateCampaignInput struct {
	Description string
	FeePercent  int
	SoftCap     domain.Amount
	HardCap     domain.Amount
	ClosingTime time.Time
}

// Validate performs the cheap structural checks; the full config validation
// (caps ordering, closing time in the future) happens in the domain at
// creation time.
func (i CreateCampaignInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if i.ClosingTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "closing_time", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ContributeInput holds the parameters for a contribution.
type ContributeInput struct {
	CampaignID uuid.UUID
	Amount     domain.Amount
}

// Validate checks all fields and collects all errors.
func (i ContributeInput) Validate() error {
	var errs []domain.FieldError
	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	if i.Amount.IsZero() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CloseMode selects the terminal state of a close operation.
type CloseMode string

const (
	CloseModeWithdraw  CloseMode = "withdraw"
	CloseModeRefundAll CloseMode = "refund_all"
)

// CloseInput holds the parameters for closing a campaign.
type CloseInput struct {
	CampaignID uuid.UUID
	Mode       CloseMode
}

// Validate checks all fields and collects all errors.
func (i CloseInput) Validate() error {
	var errs []domain.FieldError
	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	if i.Mode != CloseModeWithdraw && i.Mode != CloseModeRefundAll {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be \"withdraw\" or \"refund_all\""})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DistributeInput holds the parameters for distributing one asset.
type DistributeInput struct {
	CampaignID uuid.UUID
	Asset      domain.AssetID
}

// Validate checks all fields and collects all errors.
func (i DistributeInput) Validate() error {
	var errs []domain.FieldError
	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	if !i.Asset.IsValid() {
		errs = append(errs, domain.FieldError{Field: "asset", Message: "invalid asset id"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DepositInput holds the parameters for a profit deposit into custody.
type DepositInput struct {
	CampaignID uuid.UUID
	Asset      domain.AssetID
	Amount     domain.Amount
}

// Validate checks all fields and collects all errors.
func (i DepositInput) Validate() error {
	var errs []domain.FieldError
	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	if !i.Asset.IsValid() {
		errs = append(errs, domain.FieldError{Field: "asset", Message: "invalid asset id"})
	}
	if i.Amount.IsZero() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
