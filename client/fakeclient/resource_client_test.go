package fakeclient

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

func Test_ResourceClient_ListVaultsPaged(t *testing.T) {
	ctx := context.Background()
	c := New(Config{PageSize: 2})

	group, err := c.CreateOrUpdateResourceGroup(ctx, "KeyVaultRG-x1", "eastus")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"vault3-c3", "vault1-a1", "vault2-b2"} {
		_, err := c.CreateOrUpdateVault(ctx, group, keyvault.VaultDescriptor{Name: name, Location: "westus"})
		if err != nil {
			t.Fatal(err)
		}
	}

	var names []string
	var pages int
	p := c.ListVaults(ctx, group)
	for p.More() {
		page, err := p.NextPage(ctx)
		if err != nil {
			t.Fatal(err)
		}
		pages++
		for _, v := range page {
			names = append(names, v.Name)
		}
	}

	expected := []string{"vault1-a1", "vault2-b2", "vault3-c3"}
	if !cmp.Equal(names, expected) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expected, names))
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages got %d", pages)
	}
	if c.CallCount(OpListVaults) != 1 {
		t.Fatalf("expected 1 listing call got %d", c.CallCount(OpListVaults))
	}
}

func Test_ResourceClient_FailOn(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})
	c.FailOn(OpCreateOrUpdateResourceGroup, 2, nil)

	_, err := c.CreateOrUpdateResourceGroup(ctx, "a", "eastus")
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}
	_, err = c.CreateOrUpdateResourceGroup(ctx, "b", "eastus")
	if !keyvault.IsResourceOperation(err) {
		t.Fatalf("error == %#v, want resource operation error", err)
	}
	if c.ResourceGroupExists("b") {
		t.Fatalf("expected failed group not to exist")
	}
}

func Test_ResourceClient_DeleteResourceGroupRemovesVaults(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})

	group, err := c.CreateOrUpdateResourceGroup(ctx, "KeyVaultRG-x1", "eastus")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.CreateOrUpdateVault(ctx, group, keyvault.VaultDescriptor{Name: "vault1-a1"})
	if err != nil {
		t.Fatal(err)
	}

	err = c.DeleteResourceGroup(ctx, group)
	if err != nil {
		t.Fatal(err)
	}
	if c.VaultExists(group.Name, "vault1-a1") {
		t.Fatalf("expected vault to be deleted together with its group")
	}

	err = c.DeleteResourceGroup(ctx, group)
	if !keyvault.IsNotFound(err) {
		t.Fatalf("error == %#v, want not found", err)
	}
}

func Test_ResourceClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{})
	_, err := c.GetSubscription(ctx)
	if !keyvault.IsResourceOperation(err) {
		t.Fatalf("error == %#v, want resource operation error", err)
	}
	if c.CallCount(OpGetSubscription) != 1 {
		t.Fatalf("expected the call to be recorded")
	}
}
