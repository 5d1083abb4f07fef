package service

import (
	"github.com/giantswarm/microerror"
)

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}

var pushFailedError = &microerror.Error{
	Kind: "pushFailedError",
}

// IsPushFailed asserts pushFailedError.
func IsPushFailed(err error) bool {
	return microerror.Cause(err) == pushFailedError
}
