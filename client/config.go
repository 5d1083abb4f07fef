package client

import (
	"time"

	"github.com/giantswarm/microerror"
	"github.com/google/uuid"

	"github.com/giantswarm/keyvault-lifecycle/pkg/backpressure"
	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
	"github.com/giantswarm/keyvault-lifecycle/service/collector"
)

const (
	defaultPollFrequency = 10 * time.Second
)

type AzureClientSetConfig struct {
	// ClientID is the ID of the Active Directory Service Principal.
	ClientID string
	// ClientSecret is the secret of the Active Directory Service Principal.
	ClientSecret string
	// EnvironmentName is the cloud environment identifier on Azure. Values can be
	// used as listed in the link below. Defaults to AZUREPUBLICCLOUD.
	//
	//     https://github.com/Azure/go-autorest/blob/ec5f4903f77ed9927ac95b19ab8e44ada64c1356/autorest/azure/environments.go#L13
	//
	EnvironmentName string
	// SubscriptionID is the ID of the Azure subscription.
	SubscriptionID string
	// TenantID is the ID of the Active Directory tenant.
	TenantID string
	// PartnerID is the ID used for the Azure Partner Program.
	PartnerID string
	// PollFrequency is the interval long-running operations are polled at
	// until they reach a terminal state.
	PollFrequency time.Duration

	// Backpressure is shared by all clients of the set. A new one is created
	// when empty.
	Backpressure *backpressure.Backpressure
	// Metrics is optional.
	Metrics collector.AzureAPIMetrics
}

// Validate checks the credentials before any client gets created. Missing or
// malformed credentials are reported as keyvault.AuthenticationError.
func (c AzureClientSetConfig) Validate() error {
	if c.ClientID == "" {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.ClientID must not be empty", c)
	}
	if c.ClientSecret == "" {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.ClientSecret must not be empty", c)
	}
	if c.SubscriptionID == "" {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.SubscriptionID must not be empty", c)
	}
	if c.TenantID == "" {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.TenantID must not be empty", c)
	}

	if _, err := uuid.Parse(c.ClientID); err != nil {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.ClientID must be a GUID", c)
	}
	if _, err := uuid.Parse(c.SubscriptionID); err != nil {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.SubscriptionID must be a GUID", c)
	}
	if _, err := uuid.Parse(c.TenantID); err != nil {
		return microerror.Maskf(keyvault.AuthenticationError, "%T.TenantID must be a GUID", c)
	}

	if c.PollFrequency < 0 {
		return microerror.Maskf(invalidConfigError, "%T.PollFrequency must not be negative", c)
	}

	return nil
}
