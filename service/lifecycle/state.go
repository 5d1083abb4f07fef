package lifecycle

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
)

type State string

const (
	StateInit                 State = "Init"
	StateGroupCreating        State = "GroupCreating"
	StateGroupReady           State = "GroupReady"
	StateVault1Creating       State = "Vault1Creating"
	StateVault1PolicyUpdating State = "Vault1PolicyUpdating"
	StateVault1Patching       State = "Vault1Patching"
	StateVault2Creating       State = "Vault2Creating"
	StateVault2PolicyUpdating State = "Vault2PolicyUpdating"
	StateListing              State = "Listing"
	StateDeleting             State = "Deleting"
	StateGroupDeleting        State = "GroupDeleting"
	StateCleanup              State = "Cleanup"
	StateDone                 State = "Done"
)

// next lists the successor of every state on the happy path. Every state
// except Done may additionally move to Cleanup.
var next = map[State]State{
	StateInit:                 StateGroupCreating,
	StateGroupCreating:        StateGroupReady,
	StateGroupReady:           StateVault1Creating,
	StateVault1Creating:       StateVault1PolicyUpdating,
	StateVault1PolicyUpdating: StateVault1Patching,
	StateVault1Patching:       StateVault2Creating,
	StateVault2Creating:       StateVault2PolicyUpdating,
	StateVault2PolicyUpdating: StateListing,
	StateListing:              StateDeleting,
	StateDeleting:             StateGroupDeleting,
	StateGroupDeleting:        StateDone,
	StateCleanup:              StateDone,
}

func validTransition(from, to State) bool {
	if from == StateDone {
		return false
	}
	if to == StateCleanup {
		return from != StateCleanup
	}

	return next[from] == to
}

type stateMachine struct {
	logger micrologger.Logger

	current State
	visited []State
}

func newStateMachine(logger micrologger.Logger) *stateMachine {
	return &stateMachine{
		logger: logger,

		current: StateInit,
		visited: []State{StateInit},
	}
}

func (m *stateMachine) Current() State {
	return m.current
}

func (m *stateMachine) Transition(ctx context.Context, to State) error {
	if !validTransition(m.current, to) {
		return microerror.Maskf(invalidTransitionError, "from %#q to %#q", m.current, to)
	}

	m.logger.LogCtx(ctx, "level", "debug", "message", "transitioning workflow state", "from", string(m.current), "state", string(to))

	m.current = to
	m.visited = append(m.visited, to)

	return nil
}

func (m *stateMachine) Visited() []State {
	return append([]State{}, m.visited...)
}
