package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/keyvault-lifecycle/flag"
	"github.com/giantswarm/keyvault-lifecycle/pkg/project"
	"github.com/giantswarm/keyvault-lifecycle/service"
	"github.com/giantswarm/keyvault-lifecycle/service/lifecycle"
)

var (
	f *flag.Flag = flag.New()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger, err := micrologger.New(micrologger.Config{})
	if err != nil {
		panic(fmt.Sprintf("%#v\n", microerror.Mask(err)))
	}

	err = mainError(ctx, logger)
	if err != nil {
		logger.Errorf(ctx, err, "%s failed", project.Name())
		cancel()
		os.Exit(1)
	}
}

func mainError(ctx context.Context, logger micrologger.Logger) error {
	v := viper.New()

	rootCommand := &cobra.Command{
		Use:           project.Name(),
		Short:         project.Description(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	runCommand := &cobra.Command{
		Use:   "run",
		Short: "Provision the key vaults, list them and delete everything again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runError(cmd.Context(), logger, v)
		},
	}

	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Description:    %s\n", project.Description())
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit:     %s\n", project.GitSHA())
			fmt.Fprintf(cmd.OutOrStdout(), "Name:           %s\n", project.Name())
			fmt.Fprintf(cmd.OutOrStdout(), "Source:         %s\n", project.Source())
			fmt.Fprintf(cmd.OutOrStdout(), "Version:        %s\n", project.Version())
		},
	}

	runCommand.Flags().String(f.Service.Azure.ClientID, "", "ID of the Active Directory Service Principal.")
	runCommand.Flags().String(f.Service.Azure.ClientSecret, "", "Secret of the Active Directory Service Principal.")
	// The cloud environment identifier. Takes values from https://github.com/Azure/go-autorest/blob/ec5f4903f77ed9927ac95b19ab8e44ada64c1356/autorest/azure/environments.go#L13
	runCommand.Flags().String(f.Service.Azure.EnvironmentName, "AZUREPUBLICCLOUD", "Azure Cloud Environment identifier.")
	runCommand.Flags().String(f.Service.Azure.ObjectID, "", "Object ID of the principal the vault access policies are granted to.")
	runCommand.Flags().String(f.Service.Azure.PartnerID, "", "Partner ID used in the Azure Partner Program.")
	runCommand.Flags().String(f.Service.Azure.SubscriptionID, "", "ID of the Azure Subscription.")
	runCommand.Flags().String(f.Service.Azure.TenantID, "", "ID of the Active Directory Tenant.")
	runCommand.Flags().String(f.Service.Metrics.Pushgateway, "", "URL of the Prometheus Pushgateway API call metrics are pushed to. Metrics are not pushed when empty.")
	runCommand.Flags().String(f.Service.Workflow.CleanupTimeout, lifecycle.DefaultCleanupTimeout.String(), "Maximum time to wait for the deletion of the resource group.")
	runCommand.Flags().String(f.Service.Workflow.Location.PrimaryVault, "westus", "Location of the first vault.")
	runCommand.Flags().String(f.Service.Workflow.Location.ResourceGroup, "eastus", "Location of the resource group.")
	runCommand.Flags().String(f.Service.Workflow.Location.SecondaryVault, "eastus", "Location of the second vault.")
	runCommand.Flags().String(f.Service.Workflow.PollFrequency, "10s", "Interval long-running operations are polled at.")
	runCommand.Flags().String(f.Service.Workflow.Prefix.PrimaryVault, lifecycle.DefaultPrimaryVaultPrefix, "Name prefix of the first vault.")
	runCommand.Flags().String(f.Service.Workflow.Prefix.ResourceGroup, lifecycle.DefaultResourceGroupPrefix, "Name prefix of the resource group.")
	runCommand.Flags().String(f.Service.Workflow.Prefix.SecondaryVault, lifecycle.DefaultSecondaryVaultPrefix, "Name prefix of the second vault.")

	err := v.BindPFlags(runCommand.Flags())
	if err != nil {
		return microerror.Mask(err)
	}

	envs := map[string][]string{
		f.Service.Azure.ClientID:        {"CLIENT_ID", "AZURE_CLIENT_ID"},
		f.Service.Azure.ClientSecret:    {"CLIENT_SECRET", "AZURE_CLIENT_SECRET"},
		f.Service.Azure.EnvironmentName: {"AZURE_ENVIRONMENT"},
		f.Service.Azure.ObjectID:        {"OBJECT_ID", "AZURE_OBJECT_ID"},
		f.Service.Azure.SubscriptionID:  {"SUBSCRIPTION_ID", "AZURE_SUBSCRIPTION_ID"},
		f.Service.Azure.TenantID:        {"TENANT_ID", "AZURE_TENANT_ID"},
	}
	for key, names := range envs {
		err = v.BindEnv(append([]string{key}, names...)...)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	rootCommand.AddCommand(runCommand, versionCommand)

	err = rootCommand.ExecuteContext(ctx)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func runError(ctx context.Context, logger micrologger.Logger, v *viper.Viper) error {
	var err error

	var newService *service.Service
	{
		c := service.Config{
			Logger: logger,

			Flag:  f,
			Viper: v,
		}

		newService, err = service.New(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	result, err := newService.Run(ctx)
	if err != nil {
		return microerror.Mask(err)
	}

	logger.Debugf(ctx, "listed vaults %v in resource group %#q, cleanup %s", result.ListedVaults, result.ResourceGroup.Name, result.Cleanup)

	return nil
}
