// Package keyvault holds the domain model of the vault lifecycle: handles of
// provisioned resources, vault descriptors and patches, and the access-policy
// set semantics shared by every ResourceClient implementation.
package keyvault

import (
	"context"
)

const (
	SkuFamilyA = "A"
)

type SkuName string

const (
	SkuStandard SkuName = "standard"
	SkuPremium  SkuName = "premium"
)

type NetworkAction string

const (
	NetworkActionAllow NetworkAction = "Allow"
	NetworkActionDeny  NetworkAction = "Deny"
)

type NetworkBypass string

const (
	NetworkBypassAzureServices NetworkBypass = "AzureServices"
	NetworkBypassNone          NetworkBypass = "None"
)

const (
	PublicNetworkAccessEnabled  = "Enabled"
	PublicNetworkAccessDisabled = "Disabled"
)

// Subscription is the resolved subscription context the workflow runs in.
type Subscription struct {
	ID          string
	DisplayName string
	TenantID    string
	State       string
}

// ResourceGroup is the handle of a provisioned resource group.
type ResourceGroup struct {
	ID       string
	Name     string
	Location string
}

// Vault is the handle of a provisioned vault.
type Vault struct {
	ID            string
	Name          string
	ResourceGroup string
	Location      string
}

type NetworkRuleSet struct {
	DefaultAction NetworkAction
	Bypass        NetworkBypass
	IPRules       []string
}

// VaultDescriptor describes a vault to be created.
type VaultDescriptor struct {
	Name     string
	Location string
	TenantID string
	Sku      SkuName

	AccessPolicies []AccessPolicyEntry
	NetworkRules   *NetworkRuleSet

	EnabledForDeployment         bool
	EnabledForTemplateDeployment bool
	PublicNetworkAccess          string

	Tags map[string]string
}

// VaultPatch carries the optional changes applied to an existing vault. Nil
// fields are left untouched. AccessPolicies are upserted by principal.
type VaultPatch struct {
	Sku            *SkuName
	AccessPolicies []AccessPolicyEntry
	NetworkRules   *NetworkRuleSet

	EnabledForDeployment         *bool
	EnabledForTemplateDeployment *bool
	PublicNetworkAccess          *string
}

// VaultSummary is a single item yielded when listing vaults.
type VaultSummary struct {
	ID       string
	Name     string
	Location string
}

// VaultPager is a finite, one-shot sequence of vault summaries. Once More
// returns false the pager is exhausted and cannot be restarted.
type VaultPager interface {
	More() bool
	NextPage(ctx context.Context) ([]VaultSummary, error)
}
