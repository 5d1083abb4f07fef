// Package lifecycle implements the vault provisioning workflow. It creates a
// resource group, provisions and configures two vaults inside it, lists and
// deletes them, and deletes the resource group again no matter which of the
// earlier steps failed.
package lifecycle

import (
	"context"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/giantswarm/to"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
	"github.com/giantswarm/keyvault-lifecycle/pkg/naming"
)

const (
	DefaultResourceGroupPrefix  = "KeyVaultRG"
	DefaultPrimaryVaultPrefix   = "vault1"
	DefaultSecondaryVaultPrefix = "vault2"

	DefaultCleanupTimeout = 30 * time.Minute
)

// CleanupOutcome reports what the release did with the resource group.
type CleanupOutcome string

const (
	// CleanupSkipped means no resource group was ever created.
	CleanupSkipped CleanupOutcome = "skipped"
	// CleanupDeleted means the resource group was deleted.
	CleanupDeleted CleanupOutcome = "deleted"
	// CleanupAlreadyGone means the resource group did not exist anymore.
	CleanupAlreadyGone CleanupOutcome = "already-gone"
	// CleanupFailed means deleting the resource group failed. The group may
	// still exist and has to be removed manually.
	CleanupFailed CleanupOutcome = "failed"
)

type Config struct {
	Client ResourceClient
	Logger micrologger.Logger
	Names  NameGenerator

	// TenantID is the tenant the vaults and their access policies are
	// created in.
	TenantID string
	// ObjectID is the principal the vault access policies are granted to.
	ObjectID string

	ResourceGroupLocation string
	PrimaryLocation       string
	SecondaryLocation     string

	ResourceGroupPrefix  string
	PrimaryVaultPrefix   string
	SecondaryVaultPrefix string

	// CleanupTimeout bounds the deletion of the resource group. The deletion
	// does not observe cancellation of the context Run was called with.
	CleanupTimeout time.Duration
}

// Result describes what a single run provisioned. Fields of steps that never
// ran are left empty.
type Result struct {
	Subscription   keyvault.Subscription
	ResourceGroup  keyvault.ResourceGroup
	PrimaryVault   keyvault.Vault
	SecondaryVault keyvault.Vault
	// ListedVaults are the vault names in the order the listing yielded
	// them.
	ListedVaults []string
	States       []State

	Cleanup CleanupOutcome
	// CleanupError is set when deleting the resource group failed, even if
	// Run returned another error.
	CleanupError error
}

type Workflow struct {
	client ResourceClient
	logger micrologger.Logger
	names  NameGenerator

	tenantID string
	objectID string

	resourceGroupLocation string
	primaryLocation       string
	secondaryLocation     string

	resourceGroupPrefix  string
	primaryVaultPrefix   string
	secondaryVaultPrefix string

	cleanupTimeout time.Duration
}

func New(config Config) (*Workflow, error) {
	if config.Client == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Client must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Names == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Names must not be empty", config)
	}

	if config.TenantID == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.TenantID must not be empty", config)
	}
	if config.ObjectID == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.ObjectID must not be empty", config)
	}
	if config.ResourceGroupLocation == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.ResourceGroupLocation must not be empty", config)
	}
	if config.PrimaryLocation == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.PrimaryLocation must not be empty", config)
	}
	if config.SecondaryLocation == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.SecondaryLocation must not be empty", config)
	}
	if config.CleanupTimeout < 0 {
		return nil, microerror.Maskf(invalidConfigError, "%T.CleanupTimeout must not be negative", config)
	}

	if config.ResourceGroupPrefix == "" {
		config.ResourceGroupPrefix = DefaultResourceGroupPrefix
	}
	if config.PrimaryVaultPrefix == "" {
		config.PrimaryVaultPrefix = DefaultPrimaryVaultPrefix
	}
	if config.SecondaryVaultPrefix == "" {
		config.SecondaryVaultPrefix = DefaultSecondaryVaultPrefix
	}
	if config.CleanupTimeout == 0 {
		config.CleanupTimeout = DefaultCleanupTimeout
	}

	w := &Workflow{
		client: config.Client,
		logger: config.Logger,
		names:  config.Names,

		tenantID: config.TenantID,
		objectID: config.ObjectID,

		resourceGroupLocation: config.ResourceGroupLocation,
		primaryLocation:       config.PrimaryLocation,
		secondaryLocation:     config.SecondaryLocation,

		resourceGroupPrefix:  config.ResourceGroupPrefix,
		primaryVaultPrefix:   config.PrimaryVaultPrefix,
		secondaryVaultPrefix: config.SecondaryVaultPrefix,

		cleanupTimeout: config.CleanupTimeout,
	}

	return w, nil
}

// Run executes the workflow once. Steps run strictly in sequence and the
// first failing step aborts the remaining ones. Once the resource group was
// created it is deleted exactly once before Run returns. A failed deletion
// is reported in Result.CleanupError and only returned as error when no
// earlier step failed.
func (w *Workflow) Run(ctx context.Context) (result Result, err error) {
	m := newStateMachine(w.logger)

	group, err := w.acquire(ctx, m, &result)
	defer w.release(ctx, m, group, &result, &err)
	if err != nil {
		return result, microerror.Mask(err)
	}

	err = w.provision(ctx, m, group, &result)
	if err != nil {
		return result, microerror.Mask(err)
	}

	return result, nil
}

// acquire resolves the subscription and creates the resource group. The
// returned group is empty unless its creation succeeded.
func (w *Workflow) acquire(ctx context.Context, m *stateMachine, result *Result) (keyvault.ResourceGroup, error) {
	w.logger.Debugf(ctx, "resolving subscription")

	s, err := w.client.GetSubscription(ctx)
	if err != nil {
		return keyvault.ResourceGroup{}, microerror.Mask(err)
	}
	result.Subscription = s

	w.logger.Debugf(ctx, "resolved subscription %#q", s.ID)

	err = m.Transition(ctx, StateGroupCreating)
	if err != nil {
		return keyvault.ResourceGroup{}, microerror.Mask(err)
	}

	name := w.names.Name(w.resourceGroupPrefix)

	w.logger.Debugf(ctx, "ensuring resource group %#q in %#q", name, w.resourceGroupLocation)

	g, err := w.client.CreateOrUpdateResourceGroup(ctx, name, w.resourceGroupLocation)
	if err != nil {
		return keyvault.ResourceGroup{}, microerror.Mask(err)
	}
	if g.Name == "" {
		g.Name = name
	}
	result.ResourceGroup = g

	w.logger.Debugf(ctx, "ensured resource group %#q", g.Name)

	err = m.Transition(ctx, StateGroupReady)
	if err != nil {
		return g, microerror.Mask(err)
	}

	return g, nil
}

func (w *Workflow) provision(ctx context.Context, m *stateMachine, group keyvault.ResourceGroup, result *Result) error {
	var err error

	var primaryGrant keyvault.AccessPolicyEntry
	{
		err = m.Transition(ctx, StateVault1Creating)
		if err != nil {
			return microerror.Mask(err)
		}

		result.PrimaryVault, err = w.createVault(ctx, group, w.names.Name(w.primaryVaultPrefix), w.primaryLocation)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	{
		err = m.Transition(ctx, StateVault1PolicyUpdating)
		if err != nil {
			return microerror.Mask(err)
		}

		primaryGrant = w.accessPolicy(keyvault.Permissions{
			Keys:    []string{keyvault.PermissionAll},
			Secrets: []string{keyvault.PermissionGet, keyvault.PermissionList},
		})

		err = w.grant(ctx, result.PrimaryVault, primaryGrant)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	{
		err = m.Transition(ctx, StateVault1Patching)
		if err != nil {
			return microerror.Mask(err)
		}

		broadened := primaryGrant
		broadened.Permissions = primaryGrant.Permissions.Merge(keyvault.Permissions{
			Secrets: []string{keyvault.PermissionAll},
		})

		sku := keyvault.SkuPremium
		patch := keyvault.VaultPatch{
			Sku:            &sku,
			AccessPolicies: []keyvault.AccessPolicyEntry{broadened},
			NetworkRules: &keyvault.NetworkRuleSet{
				DefaultAction: keyvault.NetworkActionAllow,
				Bypass:        keyvault.NetworkBypassAzureServices,
			},
			EnabledForDeployment:         to.BoolP(true),
			EnabledForTemplateDeployment: to.BoolP(true),
			PublicNetworkAccess:          to.StringP(keyvault.PublicNetworkAccessEnabled),
		}

		w.logger.Debugf(ctx, "ensuring vault %#q is patched", result.PrimaryVault.Name)

		err = w.client.PatchVault(ctx, result.PrimaryVault, patch)
		if err != nil {
			return microerror.Mask(err)
		}

		w.logger.Debugf(ctx, "ensured vault %#q is patched", result.PrimaryVault.Name)
	}

	{
		err = m.Transition(ctx, StateVault2Creating)
		if err != nil {
			return microerror.Mask(err)
		}

		result.SecondaryVault, err = w.createVault(ctx, group, w.names.Name(w.secondaryVaultPrefix), w.secondaryLocation)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	{
		err = m.Transition(ctx, StateVault2PolicyUpdating)
		if err != nil {
			return microerror.Mask(err)
		}

		secondaryGrant := w.accessPolicy(keyvault.Permissions{
			Keys:    []string{keyvault.PermissionList, keyvault.PermissionGet, keyvault.PermissionDecrypt},
			Secrets: []string{keyvault.PermissionGet},
		})

		err = w.grant(ctx, result.SecondaryVault, secondaryGrant)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	{
		err = m.Transition(ctx, StateListing)
		if err != nil {
			return microerror.Mask(err)
		}

		result.ListedVaults, err = w.listVaults(ctx, group)
		if err != nil {
			return microerror.Mask(err)
		}

		err = verifyListing(result.ListedVaults, result.PrimaryVault.Name, result.SecondaryVault.Name)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	{
		err = m.Transition(ctx, StateDeleting)
		if err != nil {
			return microerror.Mask(err)
		}

		for _, v := range []keyvault.Vault{result.PrimaryVault, result.SecondaryVault} {
			w.logger.Debugf(ctx, "deleting vault %#q", v.Name)

			err = w.client.DeleteVault(ctx, v)
			if err != nil {
				return microerror.Mask(err)
			}

			w.logger.Debugf(ctx, "deleted vault %#q", v.Name)
		}
	}

	return nil
}

// release deletes the resource group created by acquire. It runs on a
// context detached from the caller so that cancellation of a run still
// cleans up.
func (w *Workflow) release(ctx context.Context, m *stateMachine, group keyvault.ResourceGroup, result *Result, err *error) {
	defer func() {
		result.States = m.Visited()
	}()

	if *err != nil {
		w.logger.Errorf(ctx, *err, "workflow failed in state %#q", m.Current())
		w.transition(ctx, m, StateCleanup)
	} else {
		w.transition(ctx, m, StateGroupDeleting)
	}
	defer w.transition(ctx, m, StateDone)

	if group.Name == "" {
		result.Cleanup = CleanupSkipped
		w.logger.Debugf(ctx, "skipping resource group deletion: %s", microerror.Maskf(notProvisionedError, "no resource group was created").Error())
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.cleanupTimeout)
	defer cancel()

	w.logger.Debugf(ctx, "deleting resource group %#q", group.Name)

	deleteErr := w.client.DeleteResourceGroup(cleanupCtx, group)
	if keyvault.IsNotFound(deleteErr) {
		result.Cleanup = CleanupAlreadyGone
		w.logger.Debugf(ctx, "did not delete resource group %#q: already deleted", group.Name)
		return
	} else if deleteErr != nil {
		result.Cleanup = CleanupFailed
		result.CleanupError = microerror.Maskf(cleanupFailedError, "resource group %#q may still exist: %s", group.Name, deleteErr.Error())

		w.logger.Errorf(ctx, deleteErr, "failed to delete resource group %#q, it has to be deleted manually", group.Name)

		if *err == nil {
			*err = result.CleanupError
		}
		return
	}

	result.Cleanup = CleanupDeleted
	w.logger.Debugf(ctx, "deleted resource group %#q", group.Name)
}

func (w *Workflow) accessPolicy(permissions keyvault.Permissions) keyvault.AccessPolicyEntry {
	return keyvault.AccessPolicyEntry{
		TenantID:    w.tenantID,
		ObjectID:    w.objectID,
		Permissions: permissions,
	}
}

func (w *Workflow) createVault(ctx context.Context, group keyvault.ResourceGroup, name, location string) (keyvault.Vault, error) {
	err := naming.ValidateVaultName(name)
	if err != nil {
		return keyvault.Vault{}, microerror.Mask(err)
	}

	descriptor := keyvault.VaultDescriptor{
		Name:     name,
		Location: location,
		TenantID: w.tenantID,
		Sku:      keyvault.SkuPremium,
		// Vaults start without any principal. Access is granted by
		// explicit updates afterwards.
		AccessPolicies: []keyvault.AccessPolicyEntry{},
	}

	w.logger.Debugf(ctx, "ensuring vault %#q in %#q", name, location)

	v, err := w.client.CreateOrUpdateVault(ctx, group, descriptor)
	if err != nil {
		return keyvault.Vault{}, microerror.Mask(err)
	}
	if v.Name == "" {
		v.Name = name
	}
	if v.ResourceGroup == "" {
		v.ResourceGroup = group.Name
	}

	w.logger.Debugf(ctx, "ensured vault %#q", v.Name)

	return v, nil
}

// grant sends a payload holding only the given entry. Entries granted to
// other vaults are never part of it.
func (w *Workflow) grant(ctx context.Context, vault keyvault.Vault, entry keyvault.AccessPolicyEntry) error {
	w.logger.Debugf(ctx, "ensuring access policy of principal %#q on vault %#q", entry.ObjectID, vault.Name)

	err := w.client.UpdateVaultAccessPolicy(ctx, vault, keyvault.UpdateKindAdd, []keyvault.AccessPolicyEntry{entry})
	if err != nil {
		return microerror.Mask(err)
	}

	w.logger.Debugf(ctx, "ensured access policy of principal %#q on vault %#q", entry.ObjectID, vault.Name)

	return nil
}

func (w *Workflow) listVaults(ctx context.Context, group keyvault.ResourceGroup) ([]string, error) {
	var names []string

	pager := w.client.ListVaults(ctx, group)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, microerror.Mask(err)
		}

		for _, v := range page {
			w.logger.Debugf(ctx, "found vault %#q in %#q", v.Name, v.Location)
			names = append(names, v.Name)
		}
	}

	return names, nil
}

func (w *Workflow) transition(ctx context.Context, m *stateMachine, s State) {
	err := m.Transition(ctx, s)
	if err != nil {
		w.logger.Errorf(ctx, err, "failed to transition workflow state")
	}
}

func verifyListing(listed []string, expected ...string) error {
	for _, e := range expected {
		var found bool
		for _, l := range listed {
			if l == e {
				found = true
				break
			}
		}

		if !found {
			return microerror.Maskf(incompleteListingError, "vault %#q not listed", e)
		}
	}

	return nil
}
