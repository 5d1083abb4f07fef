package lifecycle

import (
	"context"
	"strconv"
	"testing"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger/microloggertest"
	"github.com/google/go-cmp/cmp"

	"github.com/giantswarm/keyvault-lifecycle/client/fakeclient"
	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
	"github.com/giantswarm/keyvault-lifecycle/pkg/naming"
)

const (
	testGroupName     = "KeyVaultRG-x1"
	testPrimaryName   = "vault1-a1"
	testSecondaryName = "vault2-b2"
)

type fixedNames map[string]string

func (n fixedNames) Name(prefix string) string {
	return n[prefix]
}

func testNames() fixedNames {
	return fixedNames{
		DefaultResourceGroupPrefix:  testGroupName,
		DefaultPrimaryVaultPrefix:   testPrimaryName,
		DefaultSecondaryVaultPrefix: testSecondaryName,
	}
}

func testConfig(c ResourceClient) Config {
	return Config{
		Client: c,
		Logger: microloggertest.New(),
		Names:  testNames(),

		TenantID: fakeclient.TenantID,
		ObjectID: fakeclient.ObjectID,

		ResourceGroupLocation: "eastus",
		PrimaryLocation:       "westus",
		SecondaryLocation:     "eastus",
	}
}

func newTestWorkflow(t *testing.T, c ResourceClient) *Workflow {
	t.Helper()

	w, err := New(testConfig(c))
	if err != nil {
		t.Fatal(err)
	}

	return w
}

func Test_New(t *testing.T) {
	testCases := []struct {
		name         string
		mutate       func(c *Config)
		errorMatcher func(err error) bool
	}{
		{
			name:   "case 0: valid config",
			mutate: func(c *Config) {},
		},
		{
			name:         "case 1: missing client",
			mutate:       func(c *Config) { c.Client = nil },
			errorMatcher: IsInvalidConfig,
		},
		{
			name:         "case 2: missing logger",
			mutate:       func(c *Config) { c.Logger = nil },
			errorMatcher: IsInvalidConfig,
		},
		{
			name:         "case 3: missing object ID",
			mutate:       func(c *Config) { c.ObjectID = "" },
			errorMatcher: IsInvalidConfig,
		},
		{
			name:         "case 4: missing secondary location",
			mutate:       func(c *Config) { c.SecondaryLocation = "" },
			errorMatcher: IsInvalidConfig,
		},
		{
			name:         "case 5: negative cleanup timeout",
			mutate:       func(c *Config) { c.CleanupTimeout = -1 },
			errorMatcher: IsInvalidConfig,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			c := testConfig(fakeclient.New(fakeclient.Config{}))
			tc.mutate(&c)

			w, err := New(c)

			switch {
			case err == nil && tc.errorMatcher == nil:
				// correct; carry on
			case err != nil && tc.errorMatcher == nil:
				t.Fatalf("error == %#v, want nil", err)
			case err == nil && tc.errorMatcher != nil:
				t.Fatalf("error == nil, want non-nil")
			case !tc.errorMatcher(err):
				t.Fatalf("error == %#v, want matching", err)
			}

			if tc.errorMatcher != nil {
				return
			}

			if w.cleanupTimeout != DefaultCleanupTimeout {
				t.Fatalf("expected cleanup timeout %s got %s", DefaultCleanupTimeout, w.cleanupTimeout)
			}
			if w.resourceGroupPrefix != DefaultResourceGroupPrefix {
				t.Fatalf("expected prefix %#q got %#q", DefaultResourceGroupPrefix, w.resourceGroupPrefix)
			}
		})
	}
}

func Test_Workflow_Run(t *testing.T) {
	c := fakeclient.New(fakeclient.Config{})
	w := newTestWorkflow(t, c)

	result, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	expectedCalls := []fakeclient.Call{
		{Op: fakeclient.OpGetSubscription, Target: fakeclient.SubscriptionID},
		{Op: fakeclient.OpCreateOrUpdateResourceGroup, Target: testGroupName},
		{Op: fakeclient.OpCreateOrUpdateVault, Target: testPrimaryName},
		{Op: fakeclient.OpUpdateVaultAccessPolicy, Target: testPrimaryName},
		{Op: fakeclient.OpPatchVault, Target: testPrimaryName},
		{Op: fakeclient.OpCreateOrUpdateVault, Target: testSecondaryName},
		{Op: fakeclient.OpUpdateVaultAccessPolicy, Target: testSecondaryName},
		{Op: fakeclient.OpListVaults, Target: testGroupName},
		{Op: fakeclient.OpDeleteVault, Target: testPrimaryName},
		{Op: fakeclient.OpDeleteVault, Target: testSecondaryName},
		{Op: fakeclient.OpDeleteResourceGroup, Target: testGroupName},
	}
	if !cmp.Equal(c.Calls(), expectedCalls) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expectedCalls, c.Calls()))
	}

	expectedStates := []State{
		StateInit,
		StateGroupCreating,
		StateGroupReady,
		StateVault1Creating,
		StateVault1PolicyUpdating,
		StateVault1Patching,
		StateVault2Creating,
		StateVault2PolicyUpdating,
		StateListing,
		StateDeleting,
		StateGroupDeleting,
		StateDone,
	}
	if !cmp.Equal(result.States, expectedStates) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expectedStates, result.States))
	}

	expectedListing := []string{testPrimaryName, testSecondaryName}
	if !cmp.Equal(result.ListedVaults, expectedListing) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expectedListing, result.ListedVaults))
	}

	if result.Cleanup != CleanupDeleted {
		t.Fatalf("expected cleanup %#q got %#q", CleanupDeleted, result.Cleanup)
	}
	if result.CleanupError != nil {
		t.Fatalf("expected no cleanup error got %#v", result.CleanupError)
	}
	if c.ResourceGroupExists(testGroupName) {
		t.Fatalf("expected resource group %#q to be deleted", testGroupName)
	}
	if result.Subscription.ID != fakeclient.SubscriptionID {
		t.Fatalf("expected subscription %#q got %#q", fakeclient.SubscriptionID, result.Subscription.ID)
	}
}

func Test_Workflow_Run_Failures(t *testing.T) {
	testCases := []struct {
		name                 string
		op                   string
		nth                  int
		err                  error
		errorMatcher         func(err error) bool
		expectedGroupDeletes int
		expectedVaultDeletes int
		expectedCleanup      CleanupOutcome
		expectedListedVaults []string
	}{
		{
			name:                 "case 0: resolving the subscription fails",
			op:                   fakeclient.OpGetSubscription,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 0,
			expectedCleanup:      CleanupSkipped,
		},
		{
			name:                 "case 1: rejected credentials",
			op:                   fakeclient.OpGetSubscription,
			err:                  microerror.Mask(keyvault.AuthenticationError),
			errorMatcher:         keyvault.IsAuthentication,
			expectedGroupDeletes: 0,
			expectedCleanup:      CleanupSkipped,
		},
		{
			name:                 "case 2: creating the resource group fails",
			op:                   fakeclient.OpCreateOrUpdateResourceGroup,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 0,
			expectedCleanup:      CleanupSkipped,
		},
		{
			name:                 "case 3: creating the primary vault fails",
			op:                   fakeclient.OpCreateOrUpdateVault,
			nth:                  1,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 4: granting access on the primary vault fails",
			op:                   fakeclient.OpUpdateVaultAccessPolicy,
			nth:                  1,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 5: patching the primary vault fails",
			op:                   fakeclient.OpPatchVault,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 6: creating the secondary vault fails",
			op:                   fakeclient.OpCreateOrUpdateVault,
			nth:                  2,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 7: granting access on the secondary vault fails",
			op:                   fakeclient.OpUpdateVaultAccessPolicy,
			nth:                  2,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedVaultDeletes: 0,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 8: listing fails",
			op:                   fakeclient.OpListVaults,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedCleanup:      CleanupDeleted,
		},
		{
			name:                 "case 9: deleting the primary vault fails",
			op:                   fakeclient.OpDeleteVault,
			nth:                  1,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedVaultDeletes: 1,
			expectedCleanup:      CleanupDeleted,
			expectedListedVaults: []string{testPrimaryName, testSecondaryName},
		},
		{
			name:                 "case 10: deleting the secondary vault fails",
			op:                   fakeclient.OpDeleteVault,
			nth:                  2,
			errorMatcher:         keyvault.IsResourceOperation,
			expectedGroupDeletes: 1,
			expectedVaultDeletes: 2,
			expectedCleanup:      CleanupDeleted,
			expectedListedVaults: []string{testPrimaryName, testSecondaryName},
		},
		{
			name:                 "case 11: deleting the resource group fails",
			op:                   fakeclient.OpDeleteResourceGroup,
			errorMatcher:         IsCleanupFailed,
			expectedGroupDeletes: 1,
			expectedVaultDeletes: 2,
			expectedCleanup:      CleanupFailed,
			expectedListedVaults: []string{testPrimaryName, testSecondaryName},
		},
		{
			name:                 "case 12: resource group is already gone",
			op:                   fakeclient.OpDeleteResourceGroup,
			err:                  microerror.Mask(keyvault.NotFoundError),
			expectedGroupDeletes: 1,
			expectedVaultDeletes: 2,
			expectedCleanup:      CleanupAlreadyGone,
			expectedListedVaults: []string{testPrimaryName, testSecondaryName},
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			c := fakeclient.New(fakeclient.Config{})
			c.FailOn(tc.op, tc.nth, tc.err)

			w := newTestWorkflow(t, c)

			result, err := w.Run(context.Background())

			switch {
			case err == nil && tc.errorMatcher == nil:
				// correct; carry on
			case err != nil && tc.errorMatcher == nil:
				t.Fatalf("error == %#v, want nil", err)
			case err == nil && tc.errorMatcher != nil:
				t.Fatalf("error == nil, want non-nil")
			case !tc.errorMatcher(err):
				t.Fatalf("error == %#v, want matching", err)
			}

			if c.CallCount(fakeclient.OpDeleteResourceGroup) != tc.expectedGroupDeletes {
				t.Fatalf("expected %d resource group deletions got %d", tc.expectedGroupDeletes, c.CallCount(fakeclient.OpDeleteResourceGroup))
			}
			if c.CallCount(fakeclient.OpDeleteVault) != tc.expectedVaultDeletes {
				t.Fatalf("expected %d vault deletions got %d", tc.expectedVaultDeletes, c.CallCount(fakeclient.OpDeleteVault))
			}
			if result.Cleanup != tc.expectedCleanup {
				t.Fatalf("expected cleanup %#q got %#q", tc.expectedCleanup, result.Cleanup)
			}
			if !cmp.Equal(result.ListedVaults, tc.expectedListedVaults) {
				t.Fatalf("\n\n%s\n", cmp.Diff(tc.expectedListedVaults, result.ListedVaults))
			}
			if result.States[len(result.States)-1] != StateDone {
				t.Fatalf("expected final state %#q got %#q", StateDone, result.States[len(result.States)-1])
			}
		})
	}
}

func Test_Workflow_Run_SecondaryPolicyFailure(t *testing.T) {
	c := fakeclient.New(fakeclient.Config{})
	c.FailOn(fakeclient.OpUpdateVaultAccessPolicy, 2, nil)

	w := newTestWorkflow(t, c)

	result, err := w.Run(context.Background())
	if !keyvault.IsResourceOperation(err) {
		t.Fatalf("error == %#v, want resource operation error", err)
	}

	expectedCalls := []fakeclient.Call{
		{Op: fakeclient.OpGetSubscription, Target: fakeclient.SubscriptionID},
		{Op: fakeclient.OpCreateOrUpdateResourceGroup, Target: testGroupName},
		{Op: fakeclient.OpCreateOrUpdateVault, Target: testPrimaryName},
		{Op: fakeclient.OpUpdateVaultAccessPolicy, Target: testPrimaryName},
		{Op: fakeclient.OpPatchVault, Target: testPrimaryName},
		{Op: fakeclient.OpCreateOrUpdateVault, Target: testSecondaryName},
		{Op: fakeclient.OpUpdateVaultAccessPolicy, Target: testSecondaryName},
		{Op: fakeclient.OpDeleteResourceGroup, Target: testGroupName},
	}
	if !cmp.Equal(c.Calls(), expectedCalls) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expectedCalls, c.Calls()))
	}

	if c.VaultExists(testGroupName, testPrimaryName) {
		t.Fatalf("expected vault %#q to be deleted together with its resource group", testPrimaryName)
	}
	if result.PrimaryVault.Name != testPrimaryName {
		t.Fatalf("expected primary vault %#q got %#q", testPrimaryName, result.PrimaryVault.Name)
	}

	expectedStates := []State{
		StateInit,
		StateGroupCreating,
		StateGroupReady,
		StateVault1Creating,
		StateVault1PolicyUpdating,
		StateVault1Patching,
		StateVault2Creating,
		StateVault2PolicyUpdating,
		StateCleanup,
		StateDone,
	}
	if !cmp.Equal(result.States, expectedStates) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expectedStates, result.States))
	}
}

func Test_Workflow_Run_CleanupFailureKeepsPrimaryError(t *testing.T) {
	c := fakeclient.New(fakeclient.Config{})
	c.FailOn(fakeclient.OpPatchVault, 0, microerror.Mask(keyvault.AuthenticationError))
	c.FailOn(fakeclient.OpDeleteResourceGroup, 0, nil)

	w := newTestWorkflow(t, c)

	result, err := w.Run(context.Background())
	if !keyvault.IsAuthentication(err) {
		t.Fatalf("error == %#v, want authentication error", err)
	}
	if !IsCleanupFailed(result.CleanupError) {
		t.Fatalf("cleanup error == %#v, want cleanup failed", result.CleanupError)
	}
	if result.Cleanup != CleanupFailed {
		t.Fatalf("expected cleanup %#q got %#q", CleanupFailed, result.Cleanup)
	}
}

type cancelOnPatch struct {
	*fakeclient.ResourceClient
	cancel context.CancelFunc
}

func (c cancelOnPatch) PatchVault(ctx context.Context, vault keyvault.Vault, patch keyvault.VaultPatch) error {
	c.cancel()
	return c.ResourceClient.PatchVault(ctx, vault, patch)
}

func Test_Workflow_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := fakeclient.New(fakeclient.Config{})
	w := newTestWorkflow(t, cancelOnPatch{ResourceClient: c, cancel: cancel})

	result, err := w.Run(ctx)
	if !keyvault.IsResourceOperation(err) {
		t.Fatalf("error == %#v, want resource operation error", err)
	}
	if c.CallCount(fakeclient.OpCreateOrUpdateVault) != 1 {
		t.Fatalf("expected provisioning to stop after cancellation")
	}
	if c.CallCount(fakeclient.OpDeleteResourceGroup) != 1 {
		t.Fatalf("expected 1 resource group deletion got %d", c.CallCount(fakeclient.OpDeleteResourceGroup))
	}
	if c.ResourceGroupExists(testGroupName) {
		t.Fatalf("expected resource group %#q to be deleted", testGroupName)
	}
	if result.Cleanup != CleanupDeleted {
		t.Fatalf("expected cleanup %#q got %#q", CleanupDeleted, result.Cleanup)
	}
}

type partialListing struct {
	*fakeclient.ResourceClient
}

func (c partialListing) ListVaults(ctx context.Context, group keyvault.ResourceGroup) keyvault.VaultPager {
	return &staticPager{pages: [][]keyvault.VaultSummary{{{Name: testPrimaryName}}}}
}

type staticPager struct {
	pages [][]keyvault.VaultSummary
}

func (p *staticPager) More() bool {
	return len(p.pages) > 0
}

func (p *staticPager) NextPage(ctx context.Context) ([]keyvault.VaultSummary, error) {
	page := p.pages[0]
	p.pages = p.pages[1:]
	return page, nil
}

func Test_Workflow_Run_IncompleteListing(t *testing.T) {
	c := fakeclient.New(fakeclient.Config{})
	w := newTestWorkflow(t, partialListing{ResourceClient: c})

	result, err := w.Run(context.Background())
	if !IsIncompleteListing(err) {
		t.Fatalf("error == %#v, want incomplete listing", err)
	}
	if c.CallCount(fakeclient.OpDeleteVault) != 0 {
		t.Fatalf("expected no vault deletion")
	}
	if c.CallCount(fakeclient.OpDeleteResourceGroup) != 1 {
		t.Fatalf("expected 1 resource group deletion got %d", c.CallCount(fakeclient.OpDeleteResourceGroup))
	}
	if !cmp.Equal(result.ListedVaults, []string{testPrimaryName}) {
		t.Fatalf("\n\n%s\n", cmp.Diff([]string{testPrimaryName}, result.ListedVaults))
	}
}

func Test_Workflow_Run_InvalidVaultName(t *testing.T) {
	c := fakeclient.New(fakeclient.Config{})

	config := testConfig(c)
	config.Names = fixedNames{
		DefaultResourceGroupPrefix:  testGroupName,
		DefaultPrimaryVaultPrefix:   "1vault_a1",
		DefaultSecondaryVaultPrefix: testSecondaryName,
	}

	w, err := New(config)
	if err != nil {
		t.Fatal(err)
	}

	result, err := w.Run(context.Background())
	if !naming.IsInvalidName(err) {
		t.Fatalf("error == %#v, want invalid name", err)
	}
	if c.CallCount(fakeclient.OpCreateOrUpdateVault) != 0 {
		t.Fatalf("expected no vault to be created")
	}
	if result.Cleanup != CleanupDeleted {
		t.Fatalf("expected cleanup %#q got %#q", CleanupDeleted, result.Cleanup)
	}
}
