package workflow

import (
	"github.com/giantswarm/keyvault-lifecycle/flag/service/workflow/location"
	"github.com/giantswarm/keyvault-lifecycle/flag/service/workflow/prefix"
)

type Workflow struct {
	CleanupTimeout string
	Location       location.Location
	PollFrequency  string
	Prefix         prefix.Prefix
}
