package keyvault

import (
	"github.com/giantswarm/microerror"
)

// AuthenticationError is returned when credentials are missing, invalid or
// expired. It is fatal for the workflow.
var AuthenticationError = &microerror.Error{
	Kind: "authenticationError",
}

// IsAuthentication asserts AuthenticationError.
func IsAuthentication(err error) bool {
	return microerror.Cause(err) == AuthenticationError
}

// NotFoundError is returned when the remote resource does not exist.
var NotFoundError = &microerror.Error{
	Kind: "notFoundError",
}

// IsNotFound asserts NotFoundError.
func IsNotFound(err error) bool {
	return microerror.Cause(err) == NotFoundError
}

// ResourceOperationError is returned when the remote service rejected a
// request or the request timed out.
var ResourceOperationError = &microerror.Error{
	Kind: "resourceOperationError",
}

// IsResourceOperation asserts ResourceOperationError.
func IsResourceOperation(err error) bool {
	return microerror.Cause(err) == ResourceOperationError
}

var invalidUpdateKindError = &microerror.Error{
	Kind: "invalidUpdateKindError",
}

// IsInvalidUpdateKind asserts invalidUpdateKindError.
func IsInvalidUpdateKind(err error) bool {
	return microerror.Cause(err) == invalidUpdateKindError
}
