package client

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/giantswarm/microerror"
)

// cloudConfiguration resolves a go-autorest environment name such as
// AZUREPUBLICCLOUD or AZURECHINACLOUD into the endpoints the SDK pipelines
// authenticate against and talk to.
func cloudConfiguration(environmentName string) (cloud.Configuration, error) {
	if environmentName == "" {
		environmentName = azure.PublicCloud.Name
	}

	env, err := azure.EnvironmentFromName(environmentName)
	if err != nil {
		return cloud.Configuration{}, microerror.Maskf(invalidConfigError, "unknown cloud environment %#q", environmentName)
	}

	c := cloud.Configuration{
		ActiveDirectoryAuthorityHost: env.ActiveDirectoryEndpoint,
		Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
			cloud.ResourceManager: {
				Audience: env.TokenAudience,
				Endpoint: env.ResourceManagerEndpoint,
			},
		},
	}

	return c, nil
}
