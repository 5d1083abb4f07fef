package client

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

func toVaultCreateOrUpdateParameters(d keyvault.VaultDescriptor) armkeyvault.VaultCreateOrUpdateParameters {
	properties := &armkeyvault.VaultProperties{
		TenantID: to.Ptr(d.TenantID),
		SKU:      toSKU(d.Sku),
		// The API requires the list even when the vault starts without any
		// entry.
		AccessPolicies: toAccessPolicies(d.AccessPolicies),

		EnabledForDeployment:         to.Ptr(d.EnabledForDeployment),
		EnabledForTemplateDeployment: to.Ptr(d.EnabledForTemplateDeployment),
		NetworkACLs:                  toNetworkRuleSet(d.NetworkRules),
	}
	if d.PublicNetworkAccess != "" {
		properties.PublicNetworkAccess = to.Ptr(d.PublicNetworkAccess)
	}

	return armkeyvault.VaultCreateOrUpdateParameters{
		Location:   to.Ptr(d.Location),
		Properties: properties,
		Tags:       toTags(d.Tags),
	}
}

// toVaultPatchParameters converts the patch. The access policies are passed
// separately since the API replaces the whole list on patch, so the caller
// has to send the already merged set.
func toVaultPatchParameters(p keyvault.VaultPatch, accessPolicies []keyvault.AccessPolicyEntry) armkeyvault.VaultPatchParameters {
	properties := &armkeyvault.VaultPatchProperties{
		EnabledForDeployment:         p.EnabledForDeployment,
		EnabledForTemplateDeployment: p.EnabledForTemplateDeployment,
		NetworkACLs:                  toNetworkRuleSet(p.NetworkRules),
		PublicNetworkAccess:          p.PublicNetworkAccess,
	}
	if p.Sku != nil {
		properties.SKU = toSKU(*p.Sku)
	}
	if accessPolicies != nil {
		properties.AccessPolicies = toAccessPolicies(accessPolicies)
	}

	return armkeyvault.VaultPatchParameters{
		Properties: properties,
	}
}

func toSKU(name keyvault.SkuName) *armkeyvault.SKU {
	if name == "" {
		name = keyvault.SkuStandard
	}

	return &armkeyvault.SKU{
		Family: to.Ptr(armkeyvault.SKUFamily(keyvault.SkuFamilyA)),
		Name:   to.Ptr(armkeyvault.SKUName(name)),
	}
}

func toNetworkRuleSet(r *keyvault.NetworkRuleSet) *armkeyvault.NetworkRuleSet {
	if r == nil {
		return nil
	}

	s := &armkeyvault.NetworkRuleSet{}
	if r.DefaultAction != "" {
		s.DefaultAction = to.Ptr(armkeyvault.NetworkRuleAction(r.DefaultAction))
	}
	if r.Bypass != "" {
		s.Bypass = to.Ptr(armkeyvault.NetworkRuleBypassOptions(r.Bypass))
	}
	for _, ip := range r.IPRules {
		s.IPRules = append(s.IPRules, &armkeyvault.IPRule{Value: to.Ptr(ip)})
	}

	return s
}

func toAccessPolicies(entries []keyvault.AccessPolicyEntry) []*armkeyvault.AccessPolicyEntry {
	policies := []*armkeyvault.AccessPolicyEntry{}
	for _, e := range entries {
		policies = append(policies, &armkeyvault.AccessPolicyEntry{
			TenantID:    to.Ptr(e.TenantID),
			ObjectID:    to.Ptr(e.ObjectID),
			Permissions: toPermissions(e.Permissions),
		})
	}

	return policies
}

func toPermissions(p keyvault.Permissions) *armkeyvault.Permissions {
	permissions := &armkeyvault.Permissions{}
	for _, k := range p.Keys {
		permissions.Keys = append(permissions.Keys, to.Ptr(armkeyvault.KeyPermissions(k)))
	}
	for _, s := range p.Secrets {
		permissions.Secrets = append(permissions.Secrets, to.Ptr(armkeyvault.SecretPermissions(s)))
	}
	for _, c := range p.Certificates {
		permissions.Certificates = append(permissions.Certificates, to.Ptr(armkeyvault.CertificatePermissions(c)))
	}
	for _, s := range p.Storage {
		permissions.Storage = append(permissions.Storage, to.Ptr(armkeyvault.StoragePermissions(s)))
	}

	return permissions
}

func toTags(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}

	t := map[string]*string{}
	for k, v := range tags {
		t[k] = to.Ptr(v)
	}

	return t
}

func accessPoliciesFromARM(policies []*armkeyvault.AccessPolicyEntry) []keyvault.AccessPolicyEntry {
	var entries []keyvault.AccessPolicyEntry
	for _, p := range policies {
		if p == nil {
			continue
		}

		e := keyvault.AccessPolicyEntry{
			TenantID: value(p.TenantID),
			ObjectID: value(p.ObjectID),
		}
		if p.Permissions != nil {
			for _, k := range p.Permissions.Keys {
				if k != nil {
					e.Permissions.Keys = append(e.Permissions.Keys, string(*k))
				}
			}
			for _, s := range p.Permissions.Secrets {
				if s != nil {
					e.Permissions.Secrets = append(e.Permissions.Secrets, string(*s))
				}
			}
			for _, c := range p.Permissions.Certificates {
				if c != nil {
					e.Permissions.Certificates = append(e.Permissions.Certificates, string(*c))
				}
			}
			for _, s := range p.Permissions.Storage {
				if s != nil {
					e.Permissions.Storage = append(e.Permissions.Storage, string(*s))
				}
			}
		}

		entries = append(entries, e)
	}

	return entries
}

func vaultFromARM(v armkeyvault.Vault, resourceGroup string) keyvault.Vault {
	return keyvault.Vault{
		ID:            value(v.ID),
		Name:          value(v.Name),
		ResourceGroup: resourceGroup,
		Location:      value(v.Location),
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
