package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingProviderID is returned when a profile has no usable provider_id.
var ErrMissingProviderID = errors.New("domain: profile has no provider_id")

// Identity is the local record of a person who completed a Provider ID
// sign-in, keyed by their provider_id. Only these fields are kept; the rest
// of the profile lives in the sealed cookie alone.
type Identity struct {
	ID           string // ULID
	ProviderID   string // external identifier from Provider ID
	DisplayName  string
	Email        string // synthetic, provider_<id>@provider.local
	Organization string // JSON array as received, "null" when absent
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SyntheticEmail is the placeholder email address given to a provider id.
func SyntheticEmail(providerID string) string {
	return fmt.Sprintf("provider_%s@provider.local", strings.ToLower(providerID))
}

// IdentityFromProfile extracts an Identity from a Provider ID profile
// response. The display name is name_th, then name_eng, then the provider id.
// ID and timestamps are left for the caller.
func IdentityFromProfile(profile any) (Identity, error) {
	root, ok := profile.(map[string]any)
	if !ok {
		return Identity{}, ErrMissingProviderID
	}
	data, ok := root["data"].(map[string]any)
	if !ok {
		return Identity{}, ErrMissingProviderID
	}

	providerID, ok := data["provider_id"].(string)
	if !ok || providerID == "" {
		return Identity{}, ErrMissingProviderID
	}

	name := providerID
	if v, ok := data["name_th"].(string); ok && v != "" {
		name = v
	} else if v, ok := data["name_eng"].(string); ok && v != "" {
		name = v
	}

	org, err := json.Marshal(data["organization"])
	if err != nil {
		return Identity{}, fmt.Errorf("domain: encode organization: %w", err)
	}

	return Identity{
		ProviderID:   providerID,
		DisplayName:  name,
		Email:        SyntheticEmail(providerID),
		Organization: string(org),
	}, nil
}
