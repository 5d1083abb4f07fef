package fakeclient

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/giantswarm/microerror"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

const (
	OpGetSubscription             = "GetSubscription"
	OpCreateOrUpdateResourceGroup = "CreateOrUpdateResourceGroup"
	OpCreateOrUpdateVault         = "CreateOrUpdateVault"
	OpUpdateVaultAccessPolicy     = "UpdateVaultAccessPolicy"
	OpPatchVault                  = "PatchVault"
	OpListVaults                  = "ListVaults"
	OpDeleteVault                 = "DeleteVault"
	OpDeleteResourceGroup         = "DeleteResourceGroup"
)

const (
	defaultPageSize = 10
)

// Call is a single recorded invocation. Target is the name of the resource
// group or vault the call was made for.
type Call struct {
	Op     string
	Target string
}

type Config struct {
	// PageSize is the number of vaults yielded per listing page.
	PageSize     int
	Subscription keyvault.Subscription
}

// ResourceClient is an in-memory implementation of the lifecycle resource
// client. It records every call and fails calls on demand.
type ResourceClient struct {
	mutex sync.Mutex

	pageSize     int
	subscription keyvault.Subscription

	calls  []Call
	faults map[string]fault
	groups map[string]keyvault.ResourceGroup
	vaults map[string]*vault
}

type fault struct {
	nth int
	err error
}

type vault struct {
	handle keyvault.Vault

	accessPolicies []keyvault.AccessPolicyEntry
	patches        []keyvault.VaultPatch
	sku            keyvault.SkuName
}

func New(config Config) *ResourceClient {
	if config.PageSize <= 0 {
		config.PageSize = defaultPageSize
	}
	if config.Subscription.ID == "" {
		config.Subscription = keyvault.Subscription{
			ID:          SubscriptionID,
			DisplayName: "fake subscription",
			TenantID:    TenantID,
			State:       "Enabled",
		}
	}

	c := &ResourceClient{
		pageSize:     config.PageSize,
		subscription: config.Subscription,

		faults: map[string]fault{},
		groups: map[string]keyvault.ResourceGroup{},
		vaults: map[string]*vault{},
	}

	return c
}

// FailOn makes the nth call of the given operation fail with err, counting
// from 1. An nth of 0 fails every call. A nil err fails with a
// keyvault.ResourceOperationError.
func (c *ResourceClient) FailOn(op string, nth int, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err == nil {
		err = microerror.Maskf(keyvault.ResourceOperationError, "injected failure of %s", op)
	}

	c.faults[op] = fault{nth: nth, err: err}
}

// Calls returns the recorded calls in invocation order.
func (c *ResourceClient) Calls() []Call {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]Call{}, c.calls...)
}

func (c *ResourceClient) CallCount(op string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var n int
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}

	return n
}

// AccessPolicies returns the current access policy set of the given vault.
func (c *ResourceClient) AccessPolicies(group, name string) ([]keyvault.AccessPolicyEntry, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	v, ok := c.vaults[vaultKey(group, name)]
	if !ok {
		return nil, false
	}

	return keyvault.NormalizeAccessPolicies(v.accessPolicies), true
}

// Patches returns the patches applied to the given vault.
func (c *ResourceClient) Patches(group, name string) []keyvault.VaultPatch {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	v, ok := c.vaults[vaultKey(group, name)]
	if !ok {
		return nil
	}

	return append([]keyvault.VaultPatch{}, v.patches...)
}

func (c *ResourceClient) ResourceGroupExists(name string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.groups[strings.ToLower(name)]
	return ok
}

func (c *ResourceClient) VaultExists(group, name string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.vaults[vaultKey(group, name)]
	return ok
}

func (c *ResourceClient) GetSubscription(ctx context.Context) (keyvault.Subscription, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpGetSubscription, c.subscription.ID)
	if err != nil {
		return keyvault.Subscription{}, microerror.Mask(err)
	}

	return c.subscription, nil
}

func (c *ResourceClient) CreateOrUpdateResourceGroup(ctx context.Context, name, location string) (keyvault.ResourceGroup, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpCreateOrUpdateResourceGroup, name)
	if err != nil {
		return keyvault.ResourceGroup{}, microerror.Mask(err)
	}

	g := keyvault.ResourceGroup{
		ID:       "/subscriptions/" + c.subscription.ID + "/resourceGroups/" + name,
		Name:     name,
		Location: location,
	}
	c.groups[strings.ToLower(name)] = g

	return g, nil
}

func (c *ResourceClient) CreateOrUpdateVault(ctx context.Context, group keyvault.ResourceGroup, descriptor keyvault.VaultDescriptor) (keyvault.Vault, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpCreateOrUpdateVault, descriptor.Name)
	if err != nil {
		return keyvault.Vault{}, microerror.Mask(err)
	}

	if _, ok := c.groups[strings.ToLower(group.Name)]; !ok {
		return keyvault.Vault{}, microerror.Maskf(keyvault.NotFoundError, "resource group %#q", group.Name)
	}

	h := keyvault.Vault{
		ID:            group.ID + "/providers/Microsoft.KeyVault/vaults/" + descriptor.Name,
		Name:          descriptor.Name,
		ResourceGroup: group.Name,
		Location:      descriptor.Location,
	}
	c.vaults[vaultKey(group.Name, descriptor.Name)] = &vault{
		handle:         h,
		accessPolicies: keyvault.NormalizeAccessPolicies(descriptor.AccessPolicies),
		sku:            descriptor.Sku,
	}

	return h, nil
}

func (c *ResourceClient) UpdateVaultAccessPolicy(ctx context.Context, v keyvault.Vault, kind keyvault.UpdateKind, entries []keyvault.AccessPolicyEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpUpdateVaultAccessPolicy, v.Name)
	if err != nil {
		return microerror.Mask(err)
	}

	s, err := c.vault(v)
	if err != nil {
		return microerror.Mask(err)
	}

	s.accessPolicies, err = keyvault.ApplyAccessPolicyUpdate(s.accessPolicies, kind, entries)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func (c *ResourceClient) PatchVault(ctx context.Context, v keyvault.Vault, patch keyvault.VaultPatch) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpPatchVault, v.Name)
	if err != nil {
		return microerror.Mask(err)
	}

	s, err := c.vault(v)
	if err != nil {
		return microerror.Mask(err)
	}

	if patch.AccessPolicies != nil {
		s.accessPolicies, err = keyvault.ApplyAccessPolicyUpdate(s.accessPolicies, keyvault.UpdateKindAdd, patch.AccessPolicies)
		if err != nil {
			return microerror.Mask(err)
		}
	}
	if patch.Sku != nil {
		s.sku = *patch.Sku
	}
	s.patches = append(s.patches, patch)

	return nil
}

// ListVaults returns a pager over the vaults of the group sorted by name.
// The call is recorded when the first page is fetched.
func (c *ResourceClient) ListVaults(ctx context.Context, group keyvault.ResourceGroup) keyvault.VaultPager {
	return &pager{client: c, group: group.Name, more: true}
}

func (c *ResourceClient) DeleteVault(ctx context.Context, v keyvault.Vault) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpDeleteVault, v.Name)
	if err != nil {
		return microerror.Mask(err)
	}

	_, err = c.vault(v)
	if err != nil {
		return microerror.Mask(err)
	}

	delete(c.vaults, vaultKey(v.ResourceGroup, v.Name))

	return nil
}

// DeleteResourceGroup removes the group together with all of its vaults.
func (c *ResourceClient) DeleteResourceGroup(ctx context.Context, group keyvault.ResourceGroup) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.record(ctx, OpDeleteResourceGroup, group.Name)
	if err != nil {
		return microerror.Mask(err)
	}

	if _, ok := c.groups[strings.ToLower(group.Name)]; !ok {
		return microerror.Maskf(keyvault.NotFoundError, "resource group %#q", group.Name)
	}

	delete(c.groups, strings.ToLower(group.Name))
	for k, v := range c.vaults {
		if strings.EqualFold(v.handle.ResourceGroup, group.Name) {
			delete(c.vaults, k)
		}
	}

	return nil
}

// record must be called with the mutex held.
func (c *ResourceClient) record(ctx context.Context, op, target string) error {
	c.calls = append(c.calls, Call{Op: op, Target: target})

	if ctx.Err() != nil {
		return microerror.Maskf(keyvault.ResourceOperationError, "%s %#q: %s", op, target, ctx.Err().Error())
	}

	f, ok := c.faults[op]
	if !ok {
		return nil
	}

	var n int
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	if f.nth == 0 || f.nth == n {
		return f.err
	}

	return nil
}

// vault must be called with the mutex held.
func (c *ResourceClient) vault(v keyvault.Vault) (*vault, error) {
	s, ok := c.vaults[vaultKey(v.ResourceGroup, v.Name)]
	if !ok {
		return nil, microerror.Maskf(keyvault.NotFoundError, "vault %#q", v.Name)
	}

	return s, nil
}

func (c *ResourceClient) page(ctx context.Context, group string, offset int) ([]keyvault.VaultSummary, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if offset == 0 {
		err := c.record(ctx, OpListVaults, group)
		if err != nil {
			return nil, false, microerror.Mask(err)
		}
	} else if ctx.Err() != nil {
		return nil, false, microerror.Maskf(keyvault.ResourceOperationError, "%s %#q: %s", OpListVaults, group, ctx.Err().Error())
	}

	if _, ok := c.groups[strings.ToLower(group)]; !ok {
		return nil, false, microerror.Maskf(keyvault.NotFoundError, "resource group %#q", group)
	}

	var summaries []keyvault.VaultSummary
	for _, v := range c.vaults {
		if strings.EqualFold(v.handle.ResourceGroup, group) {
			summaries = append(summaries, keyvault.VaultSummary{
				ID:       v.handle.ID,
				Name:     v.handle.Name,
				Location: v.handle.Location,
			})
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	if offset >= len(summaries) {
		return nil, false, nil
	}

	end := offset + c.pageSize
	if end > len(summaries) {
		end = len(summaries)
	}

	return summaries[offset:end], end < len(summaries), nil
}

type pager struct {
	client *ResourceClient
	group  string
	more   bool
	offset int
}

func (p *pager) More() bool {
	return p.more
}

func (p *pager) NextPage(ctx context.Context) ([]keyvault.VaultSummary, error) {
	if !p.more {
		return nil, microerror.Maskf(keyvault.ResourceOperationError, "no more pages")
	}

	summaries, more, err := p.client.page(ctx, p.group, p.offset)
	if err != nil {
		p.more = false
		return nil, microerror.Mask(err)
	}

	p.offset += len(summaries)
	p.more = more

	return summaries, nil
}

func vaultKey(group, name string) string {
	return strings.ToLower(group) + "/" + strings.ToLower(name)
}
