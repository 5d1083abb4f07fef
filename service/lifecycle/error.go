package lifecycle

import "github.com/giantswarm/microerror"

var cleanupFailedError = &microerror.Error{
	Kind: "cleanupFailedError",
}

// IsCleanupFailed asserts cleanupFailedError.
func IsCleanupFailed(err error) bool {
	return microerror.Cause(err) == cleanupFailedError
}

var incompleteListingError = &microerror.Error{
	Kind: "incompleteListingError",
}

// IsIncompleteListing asserts incompleteListingError.
func IsIncompleteListing(err error) bool {
	return microerror.Cause(err) == incompleteListingError
}

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}

var invalidTransitionError = &microerror.Error{
	Kind: "invalidTransitionError",
}

// IsInvalidTransition asserts invalidTransitionError.
func IsInvalidTransition(err error) bool {
	return microerror.Cause(err) == invalidTransitionError
}

// notProvisionedError is only ever logged. It marks a release without a
// resource group to delete.
var notProvisionedError = &microerror.Error{
	Kind: "notProvisionedError",
}

// IsNotProvisioned asserts notProvisionedError.
func IsNotProvisioned(err error) bool {
	return microerror.Cause(err) == notProvisionedError
}
