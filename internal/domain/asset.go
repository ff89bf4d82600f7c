package domain

import (
	"github.com/google/uuid"
)

// nativeAssetName is the wire representation of the native-value asset.
const nativeAssetName = "native"

// AssetID identifies a distributable asset: either the platform's native
// value or a specific fungible token. It is a tagged variant so call sites
// dispatch on Kind instead of special-casing a sentinel token id.
type AssetID struct {
	Kind  AssetKind
	Token uuid.UUID
}

// NativeAsset returns the identifier of the native-value asset.
func NativeAsset() AssetID {
	return AssetID{Kind: AssetKindNative}
}

// TokenAsset returns the identifier of the fungible token with the given id.
func TokenAsset(token uuid.UUID) AssetID {
	return AssetID{Kind: AssetKindToken, Token: token}
}

// ParseAssetID parses the wire form: "native", or a token uuid.
func ParseAssetID(s string) (AssetID, error) {
	if s == nativeAssetName {
		return NativeAsset(), nil
	}
	token, err := uuid.Parse(s)
	if err != nil {
		return AssetID{}, NewValidationError("asset", "must be \"native\" or a token uuid")
	}
	if token == uuid.Nil {
		return AssetID{}, NewValidationError("asset", "nil token uuid")
	}
	return TokenAsset(token), nil
}

func (a AssetID) String() string {
	if a.Kind == AssetKindNative {
		return nativeAssetName
	}
	return a.Token.String()
}

func (a AssetID) IsValid() bool {
	switch a.Kind {
	case AssetKindNative:
		return a.Token == uuid.Nil
	case AssetKindToken:
		return a.Token != uuid.Nil
	}
	return false
}
