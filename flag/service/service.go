package service

import (
	"github.com/giantswarm/keyvault-lifecycle/flag/service/azure"
	"github.com/giantswarm/keyvault-lifecycle/flag/service/metrics"
	"github.com/giantswarm/keyvault-lifecycle/flag/service/workflow"
)

type Service struct {
	Azure    azure.Azure
	Metrics  metrics.Metrics
	Workflow workflow.Workflow
}
