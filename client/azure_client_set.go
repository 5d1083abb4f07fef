package client

import (
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/keyvault-lifecycle/client/senddecorator"
	"github.com/giantswarm/keyvault-lifecycle/pkg/backpressure"
)

const (
	defaultAzureGUID = "37f13270-5c7a-56ff-9211-8426baaeaabd"
)

// AzureClientSet is the collection of Azure API clients.
type AzureClientSet struct {
	// The subscription ID this client set is configured with.
	SubscriptionID string
	// PollFrequency is the interval long-running operations are polled at.
	PollFrequency time.Duration

	// GroupsClient manages ARM resource groups.
	GroupsClient *armresources.ResourceGroupsClient
	// SubscriptionsClient resolves the subscription the set is configured
	// with.
	SubscriptionsClient *armsubscriptions.Client
	// VaultsClient manages key vaults and their access policies.
	VaultsClient *armkeyvault.VaultsClient
}

// NewAzureClientSet returns the Azure API clients authenticated with the
// client secret credential described by the given config.
func NewAzureClientSet(config AzureClientSetConfig) (*AzureClientSet, error) {
	err := config.Validate()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	if config.Backpressure == nil {
		config.Backpressure = &backpressure.Backpressure{}
	}
	if config.PartnerID == "" {
		config.PartnerID = defaultAzureGUID
	}
	if config.PollFrequency == 0 {
		config.PollFrequency = defaultPollFrequency
	}

	cloudConfig, err := cloudConfiguration(config.EnvironmentName)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	credential, err := azidentity.NewClientSecretCredential(config.TenantID, config.ClientID, config.ClientSecret, &azidentity.ClientSecretCredentialOptions{
		ClientOptions: azcore.ClientOptions{
			Cloud: cloudConfig,
		},
	})
	if err != nil {
		return nil, microerror.Maskf(invalidConfigError, "creating client secret credential: %s", err.Error())
	}

	groupsClient, err := armresources.NewResourceGroupsClient(config.SubscriptionID, credential, newClientOptions(config, cloudConfig, "ResourceGroups"))
	if err != nil {
		return nil, microerror.Maskf(invalidConfigError, "creating resource groups client: %s", err.Error())
	}
	subscriptionsClient, err := armsubscriptions.NewClient(credential, newClientOptions(config, cloudConfig, "Subscriptions"))
	if err != nil {
		return nil, microerror.Maskf(invalidConfigError, "creating subscriptions client: %s", err.Error())
	}
	vaultsClient, err := armkeyvault.NewVaultsClient(config.SubscriptionID, credential, newClientOptions(config, cloudConfig, "Vaults"))
	if err != nil {
		return nil, microerror.Maskf(invalidConfigError, "creating vaults client: %s", err.Error())
	}

	clientSet := &AzureClientSet{
		GroupsClient:        groupsClient,
		PollFrequency:       config.PollFrequency,
		SubscriptionID:      config.SubscriptionID,
		SubscriptionsClient: subscriptionsClient,
		VaultsClient:        vaultsClient,
	}

	return clientSet, nil
}

func newClientOptions(config AzureClientSetConfig, cloudConfig cloud.Configuration, name string) *arm.ClientOptions {
	o := &arm.ClientOptions{}
	o.Cloud = cloudConfig

	c := senddecorator.Config{
		Backpressure: config.Backpressure,
		Metrics:      config.Metrics,

		Name:           name,
		SubscriptionID: config.SubscriptionID,
		UserAgent:      fmt.Sprintf("pid-%s", config.PartnerID),
	}
	senddecorator.ConfigureClientOptions(c, o)

	return o
}
