package service

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/viper"

	"github.com/giantswarm/keyvault-lifecycle/client"
	"github.com/giantswarm/keyvault-lifecycle/flag"
	"github.com/giantswarm/keyvault-lifecycle/pkg/backpressure"
	"github.com/giantswarm/keyvault-lifecycle/pkg/naming"
	"github.com/giantswarm/keyvault-lifecycle/pkg/project"
	"github.com/giantswarm/keyvault-lifecycle/service/collector"
	"github.com/giantswarm/keyvault-lifecycle/service/lifecycle"
)

// Config represents the configuration used to create a new service.
type Config struct {
	Logger micrologger.Logger

	Flag  *flag.Flag
	Viper *viper.Viper
}

type Service struct {
	logger micrologger.Logger

	collector      *collector.AzureAPIMetricsCollector
	pushgateway    string
	subscriptionID string
	workflow       *lifecycle.Workflow
}

// New creates a new configured service object. Missing or malformed
// credentials fail here, before any request is sent to Azure.
func New(config Config) (*Service, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Flag == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Flag must not be empty", config)
	}
	if config.Viper == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Viper must not be empty", config)
	}

	var err error

	var metricsCollector *collector.AzureAPIMetricsCollector
	{
		c := collector.Config{
			Logger: config.Logger,
		}

		metricsCollector, err = collector.NewAzureAPIMetricsCollector(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var clientSet *client.AzureClientSet
	{
		c := client.AzureClientSetConfig{
			ClientID:        config.Viper.GetString(config.Flag.Service.Azure.ClientID),
			ClientSecret:    config.Viper.GetString(config.Flag.Service.Azure.ClientSecret),
			EnvironmentName: config.Viper.GetString(config.Flag.Service.Azure.EnvironmentName),
			PartnerID:       config.Viper.GetString(config.Flag.Service.Azure.PartnerID),
			PollFrequency:   config.Viper.GetDuration(config.Flag.Service.Workflow.PollFrequency),
			SubscriptionID:  config.Viper.GetString(config.Flag.Service.Azure.SubscriptionID),
			TenantID:        config.Viper.GetString(config.Flag.Service.Azure.TenantID),

			Backpressure: &backpressure.Backpressure{},
			Metrics:      metricsCollector,
		}

		clientSet, err = client.NewAzureClientSet(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var resourceClient *client.ResourceClient
	{
		c := client.ResourceClientConfig{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		resourceClient, err = client.NewResourceClient(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var names *naming.Generator
	{
		names, err = naming.New(naming.Config{})
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var workflow *lifecycle.Workflow
	{
		c := lifecycle.Config{
			Client: resourceClient,
			Logger: config.Logger,
			Names:  names,

			TenantID: config.Viper.GetString(config.Flag.Service.Azure.TenantID),
			ObjectID: config.Viper.GetString(config.Flag.Service.Azure.ObjectID),

			ResourceGroupLocation: config.Viper.GetString(config.Flag.Service.Workflow.Location.ResourceGroup),
			PrimaryLocation:       config.Viper.GetString(config.Flag.Service.Workflow.Location.PrimaryVault),
			SecondaryLocation:     config.Viper.GetString(config.Flag.Service.Workflow.Location.SecondaryVault),

			ResourceGroupPrefix:  config.Viper.GetString(config.Flag.Service.Workflow.Prefix.ResourceGroup),
			PrimaryVaultPrefix:   config.Viper.GetString(config.Flag.Service.Workflow.Prefix.PrimaryVault),
			SecondaryVaultPrefix: config.Viper.GetString(config.Flag.Service.Workflow.Prefix.SecondaryVault),

			CleanupTimeout: config.Viper.GetDuration(config.Flag.Service.Workflow.CleanupTimeout),
		}

		workflow, err = lifecycle.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	s := &Service{
		logger: config.Logger,

		collector:      metricsCollector,
		pushgateway:    config.Viper.GetString(config.Flag.Service.Metrics.Pushgateway),
		subscriptionID: clientSet.SubscriptionID,
		workflow:       workflow,
	}

	return s, nil
}

// Run executes the workflow once and pushes the collected API metrics when a
// Pushgateway is configured. Failing to push is logged and never replaces
// the error of the workflow.
func (s *Service) Run(ctx context.Context) (lifecycle.Result, error) {
	result, err := s.workflow.Run(ctx)

	pushErr := s.pushMetrics(ctx)
	if pushErr != nil {
		s.logger.Errorf(ctx, pushErr, "failed to push metrics to %#q", s.pushgateway)
	}

	if err != nil {
		return result, microerror.Mask(err)
	}

	return result, nil
}

func (s *Service) pushMetrics(ctx context.Context) error {
	if s.pushgateway == "" {
		return nil
	}

	s.logger.Debugf(ctx, "pushing metrics to %#q", s.pushgateway)

	err := push.New(s.pushgateway, project.Name()).
		Collector(s.collector).
		Grouping("subscription_id", s.subscriptionID).
		Push()
	if err != nil {
		return microerror.Maskf(pushFailedError, "%s", err.Error())
	}

	s.logger.Debugf(ctx, "pushed metrics to %#q", s.pushgateway)

	return nil
}
