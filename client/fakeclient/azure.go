package fakeclient

import (
	"github.com/giantswarm/keyvault-lifecycle/client"
)

const (
	ClientID       = "9f2b6a40-3d1c-4f5e-8a7b-1c2d3e4f5a6b"
	ObjectID       = "0b1f7e52-4c46-4a8e-9d31-2b9f0e1c3a11"
	SubscriptionID = "5c6d7e8f-9a0b-4c1d-8e2f-3a4b5c6d7e8f"
	TenantID       = "7a9376d4-7c43-480f-82ba-a090647f651d"
)

// NewAzureConfig returns a client set config that passes validation without
// pointing at real credentials.
func NewAzureConfig() client.AzureClientSetConfig {
	return client.AzureClientSetConfig{
		ClientID:       ClientID,
		ClientSecret:   "fakeClientSecret",
		SubscriptionID: SubscriptionID,
		TenantID:       TenantID,
	}
}
