package lifecycle

import (
	"context"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

//go:generate mockgen -destination mock_lifecycle/spec.go -source spec.go

// ResourceClient provisions the remote resources the workflow manages. Every
// mutating call blocks until its long-running operation reached a terminal
// state.
type ResourceClient interface {
	GetSubscription(ctx context.Context) (keyvault.Subscription, error)
	CreateOrUpdateResourceGroup(ctx context.Context, name, location string) (keyvault.ResourceGroup, error)
	CreateOrUpdateVault(ctx context.Context, group keyvault.ResourceGroup, descriptor keyvault.VaultDescriptor) (keyvault.Vault, error)
	UpdateVaultAccessPolicy(ctx context.Context, vault keyvault.Vault, kind keyvault.UpdateKind, entries []keyvault.AccessPolicyEntry) error
	PatchVault(ctx context.Context, vault keyvault.Vault, patch keyvault.VaultPatch) error
	ListVaults(ctx context.Context, group keyvault.ResourceGroup) keyvault.VaultPager
	DeleteVault(ctx context.Context, vault keyvault.Vault) error
	DeleteResourceGroup(ctx context.Context, group keyvault.ResourceGroup) error
}

// NameGenerator returns a fresh resource name for the given prefix on every
// call.
type NameGenerator interface {
	Name(prefix string) string
}
