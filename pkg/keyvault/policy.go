package keyvault

import (
	"strings"

	"github.com/giantswarm/microerror"
)

const (
	PermissionAll     = "all"
	PermissionDecrypt = "decrypt"
	PermissionGet     = "get"
	PermissionList    = "list"
)

// UpdateKind is the operation kind of an access-policy update.
type UpdateKind string

const (
	UpdateKindAdd     UpdateKind = "add"
	UpdateKindReplace UpdateKind = "replace"
	UpdateKindRemove  UpdateKind = "remove"
)

func (k UpdateKind) Validate() error {
	switch k {
	case UpdateKindAdd, UpdateKindReplace, UpdateKindRemove:
		return nil
	}

	return microerror.Maskf(invalidUpdateKindError, "%#q", string(k))
}

// Permissions is the permission set of a single principal.
type Permissions struct {
	Keys         []string
	Secrets      []string
	Certificates []string
	Storage      []string
}

// Merge returns the union of both permission sets. Within a category "all"
// subsumes every other permission.
func (p Permissions) Merge(o Permissions) Permissions {
	return Permissions{
		Keys:         mergePermissions(p.Keys, o.Keys),
		Secrets:      mergePermissions(p.Secrets, o.Secrets),
		Certificates: mergePermissions(p.Certificates, o.Certificates),
		Storage:      mergePermissions(p.Storage, o.Storage),
	}
}

func (p Permissions) copy() Permissions {
	return Permissions{
		Keys:         copyStrings(p.Keys),
		Secrets:      copyStrings(p.Secrets),
		Certificates: copyStrings(p.Certificates),
		Storage:      copyStrings(p.Storage),
	}
}

// AccessPolicyEntry grants a principal of a tenant a permission set on a
// vault.
type AccessPolicyEntry struct {
	TenantID    string
	ObjectID    string
	Permissions Permissions
}

// Principal is the key an access policy set is indexed by. Tenant and object
// IDs are GUIDs and compared case-insensitively.
func (e AccessPolicyEntry) Principal() string {
	return strings.ToLower(e.TenantID) + "/" + strings.ToLower(e.ObjectID)
}

func (e AccessPolicyEntry) copy() AccessPolicyEntry {
	return AccessPolicyEntry{
		TenantID:    e.TenantID,
		ObjectID:    e.ObjectID,
		Permissions: e.Permissions.copy(),
	}
}

// NormalizeAccessPolicies collapses entries of the same principal into one.
// The last entry of a principal wins and keeps the position of its first
// occurrence.
func NormalizeAccessPolicies(entries []AccessPolicyEntry) []AccessPolicyEntry {
	if entries == nil {
		return nil
	}

	index := map[string]int{}
	normalized := make([]AccessPolicyEntry, 0, len(entries))
	for _, e := range entries {
		i, ok := index[e.Principal()]
		if ok {
			normalized[i] = e.copy()
			continue
		}

		index[e.Principal()] = len(normalized)
		normalized = append(normalized, e.copy())
	}

	return normalized
}

// ApplyAccessPolicyUpdate computes the access policy set resulting from
// applying an update of the given kind to the current set.
//
//   - add upserts by principal. A principal that is already present gets its
//     entry replaced by the latest permission set, it is never duplicated.
//   - replace makes the given entries the whole set.
//   - remove drops every principal named by the given entries.
//
// Neither input is modified.
func ApplyAccessPolicyUpdate(current []AccessPolicyEntry, kind UpdateKind, entries []AccessPolicyEntry) ([]AccessPolicyEntry, error) {
	err := kind.Validate()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	entries = NormalizeAccessPolicies(entries)

	var result []AccessPolicyEntry
	switch kind {
	case UpdateKindAdd:
		result = NormalizeAccessPolicies(append(NormalizeAccessPolicies(current), entries...))
	case UpdateKindReplace:
		result = entries
	case UpdateKindRemove:
		removed := map[string]bool{}
		for _, e := range entries {
			removed[e.Principal()] = true
		}
		for _, e := range NormalizeAccessPolicies(current) {
			if !removed[e.Principal()] {
				result = append(result, e)
			}
		}
	}

	if result == nil {
		result = []AccessPolicyEntry{}
	}

	return result, nil
}

// FindAccessPolicy returns the entry of the given principal.
func FindAccessPolicy(entries []AccessPolicyEntry, tenantID, objectID string) (AccessPolicyEntry, bool) {
	principal := AccessPolicyEntry{TenantID: tenantID, ObjectID: objectID}.Principal()
	for _, e := range entries {
		if e.Principal() == principal {
			return e.copy(), true
		}
	}

	return AccessPolicyEntry{}, false
}

func mergePermissions(a, b []string) []string {
	if a == nil && b == nil {
		return nil
	}

	seen := map[string]bool{}
	var merged []string
	for _, p := range append(copyStrings(a), b...) {
		key := strings.ToLower(p)
		if key == PermissionAll {
			return []string{PermissionAll}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, p)
	}

	return merged
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}

	return append([]string{}, s...)
}
