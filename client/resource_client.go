package client

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
	"github.com/giantswarm/keyvault-lifecycle/pkg/project"
)

const (
	managedByTag = "managed-by"
)

type ResourceClientConfig struct {
	ClientSet *AzureClientSet
	Logger    micrologger.Logger
}

// ResourceClient provisions resource groups and key vaults through the Azure
// Resource Manager API. Every mutating call blocks until the remote operation
// reached a terminal state.
type ResourceClient struct {
	clientSet *AzureClientSet
	logger    micrologger.Logger
}

func NewResourceClient(config ResourceClientConfig) (*ResourceClient, error) {
	if config.ClientSet == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.ClientSet must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	r := &ResourceClient{
		clientSet: config.ClientSet,
		logger:    config.Logger,
	}

	return r, nil
}

func (r *ResourceClient) GetSubscription(ctx context.Context) (keyvault.Subscription, error) {
	resp, err := r.clientSet.SubscriptionsClient.Get(ctx, r.clientSet.SubscriptionID, nil)
	if err != nil {
		return keyvault.Subscription{}, classify(err, "getting subscription %#q", r.clientSet.SubscriptionID)
	}

	s := keyvault.Subscription{
		ID:          value(resp.SubscriptionID),
		DisplayName: value(resp.DisplayName),
		TenantID:    value(resp.TenantID),
	}
	if resp.State != nil {
		s.State = string(*resp.State)
	}
	if s.ID == "" {
		s.ID = r.clientSet.SubscriptionID
	}

	return s, nil
}

func (r *ResourceClient) CreateOrUpdateResourceGroup(ctx context.Context, name, location string) (keyvault.ResourceGroup, error) {
	group := armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags: map[string]*string{
			managedByTag: to.Ptr(project.Name()),
		},
	}

	resp, err := r.clientSet.GroupsClient.CreateOrUpdate(ctx, name, group, nil)
	if err != nil {
		return keyvault.ResourceGroup{}, classify(err, "creating resource group %#q", name)
	}

	g := keyvault.ResourceGroup{
		ID:       value(resp.ID),
		Name:     value(resp.Name),
		Location: value(resp.Location),
	}
	if g.Name == "" {
		g.Name = name
	}

	return g, nil
}

func (r *ResourceClient) CreateOrUpdateVault(ctx context.Context, group keyvault.ResourceGroup, descriptor keyvault.VaultDescriptor) (keyvault.Vault, error) {
	poller, err := r.clientSet.VaultsClient.BeginCreateOrUpdate(ctx, group.Name, descriptor.Name, toVaultCreateOrUpdateParameters(descriptor), nil)
	if err != nil {
		return keyvault.Vault{}, classify(err, "creating vault %#q", descriptor.Name)
	}

	resp, err := poller.PollUntilDone(ctx, r.pollOptions())
	if err != nil {
		return keyvault.Vault{}, classify(err, "waiting for vault %#q", descriptor.Name)
	}

	v := vaultFromARM(resp.Vault, group.Name)
	if v.Name == "" {
		v.Name = descriptor.Name
	}

	return v, nil
}

func (r *ResourceClient) UpdateVaultAccessPolicy(ctx context.Context, vault keyvault.Vault, kind keyvault.UpdateKind, entries []keyvault.AccessPolicyEntry) error {
	err := kind.Validate()
	if err != nil {
		return microerror.Mask(err)
	}

	parameters := armkeyvault.VaultAccessPolicyParameters{
		Properties: &armkeyvault.VaultAccessPolicyProperties{
			AccessPolicies: toAccessPolicies(keyvault.NormalizeAccessPolicies(entries)),
		},
	}

	_, err = r.clientSet.VaultsClient.UpdateAccessPolicy(ctx, vault.ResourceGroup, vault.Name, armkeyvault.AccessPolicyUpdateKind(kind), parameters, nil)
	if err != nil {
		return classify(err, "updating access policy of vault %#q", vault.Name)
	}

	return nil
}

// PatchVault applies the given patch. The access policies of the patch are
// upserted into the current set of the vault since the API replaces the list
// as a whole.
func (r *ResourceClient) PatchVault(ctx context.Context, vault keyvault.Vault, patch keyvault.VaultPatch) error {
	var accessPolicies []keyvault.AccessPolicyEntry
	if patch.AccessPolicies != nil {
		resp, err := r.clientSet.VaultsClient.Get(ctx, vault.ResourceGroup, vault.Name, nil)
		if err != nil {
			return classify(err, "getting vault %#q", vault.Name)
		}

		var current []keyvault.AccessPolicyEntry
		if resp.Properties != nil {
			current = accessPoliciesFromARM(resp.Properties.AccessPolicies)
		}

		accessPolicies, err = keyvault.ApplyAccessPolicyUpdate(current, keyvault.UpdateKindAdd, patch.AccessPolicies)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	_, err := r.clientSet.VaultsClient.Update(ctx, vault.ResourceGroup, vault.Name, toVaultPatchParameters(patch, accessPolicies), nil)
	if err != nil {
		return classify(err, "patching vault %#q", vault.Name)
	}

	return nil
}

func (r *ResourceClient) ListVaults(ctx context.Context, group keyvault.ResourceGroup) keyvault.VaultPager {
	return &vaultPager{
		group: group.Name,
		pager: r.clientSet.VaultsClient.NewListByResourceGroupPager(group.Name, nil),
	}
}

func (r *ResourceClient) DeleteVault(ctx context.Context, vault keyvault.Vault) error {
	_, err := r.clientSet.VaultsClient.Delete(ctx, vault.ResourceGroup, vault.Name, nil)
	if err != nil {
		return classify(err, "deleting vault %#q", vault.Name)
	}

	return nil
}

func (r *ResourceClient) DeleteResourceGroup(ctx context.Context, group keyvault.ResourceGroup) error {
	poller, err := r.clientSet.GroupsClient.BeginDelete(ctx, group.Name, nil)
	if err != nil {
		return classify(err, "deleting resource group %#q", group.Name)
	}

	r.logger.Debugf(ctx, "waiting for deletion of resource group %#q", group.Name)

	_, err = poller.PollUntilDone(ctx, r.pollOptions())
	if err != nil {
		return classify(err, "waiting for deletion of resource group %#q", group.Name)
	}

	return nil
}

func (r *ResourceClient) pollOptions() *runtime.PollUntilDoneOptions {
	return &runtime.PollUntilDoneOptions{
		Frequency: r.clientSet.PollFrequency,
	}
}

type vaultPager struct {
	group string
	pager *runtime.Pager[armkeyvault.VaultsClientListByResourceGroupResponse]
}

func (p *vaultPager) More() bool {
	return p.pager.More()
}

func (p *vaultPager) NextPage(ctx context.Context) ([]keyvault.VaultSummary, error) {
	resp, err := p.pager.NextPage(ctx)
	if err != nil {
		return nil, classify(err, "listing vaults of resource group %#q", p.group)
	}

	var summaries []keyvault.VaultSummary
	for _, v := range resp.Value {
		if v == nil {
			continue
		}
		summaries = append(summaries, keyvault.VaultSummary{
			ID:       value(v.ID),
			Name:     value(v.Name),
			Location: value(v.Location),
		})
	}

	return summaries, nil
}
