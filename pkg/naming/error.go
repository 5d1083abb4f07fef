package naming

import "github.com/giantswarm/microerror"

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}

var invalidNameError = &microerror.Error{
	Kind: "invalidNameError",
}

// IsInvalidName asserts invalidNameError.
func IsInvalidName(err error) bool {
	return microerror.Cause(err) == invalidNameError
}
