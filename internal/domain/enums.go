package domain

// CloseKind represents the lifecycle state of a campaign.
// A campaign starts Open and moves to exactly one terminal state.
type CloseKind string

const (
	CloseKindOpen      CloseKind = "OPEN"
	CloseKindWithdrawn CloseKind = "CLOSED_WITHDRAWN"
	CloseKindRefunded  CloseKind = "CLOSED_REFUNDED"
)

func (k CloseKind) String() string { return string(k) }

func (k CloseKind) IsValid() bool {
	switch k {
	case CloseKindOpen, CloseKindWithdrawn, CloseKindRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether the state admits no further transition.
func (k CloseKind) IsTerminal() bool {
	return k == CloseKindWithdrawn || k == CloseKindRefunded
}

// AssetKind distinguishes the platform's native value from fungible tokens.
type AssetKind string

const (
	AssetKindNative AssetKind = "NATIVE"
	AssetKindToken  AssetKind = "TOKEN"
)

func (k AssetKind) String() string { return string(k) }

func (k AssetKind) IsValid() bool {
	switch k {
	case AssetKindNative, AssetKindToken:
		return true
	}
	return false
}
