package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}

// classify maps an Azure SDK error onto the keyvault error taxonomy.
// Rejected credentials and HTTP 401/403 become keyvault.AuthenticationError,
// HTTP 404 becomes keyvault.NotFoundError, everything else is a
// keyvault.ResourceOperationError.
func classify(err error, format string, params ...interface{}) error {
	message := fmt.Sprintf(format, params...)

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return microerror.Maskf(keyvault.AuthenticationError, "%s: credential rejected", message)
	}

	if ResponseWasNotFound(err) {
		return microerror.Maskf(keyvault.NotFoundError, "%s: not found", message)
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		if respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden {
			return microerror.Maskf(keyvault.AuthenticationError, "%s: %d %s", message, respErr.StatusCode, respErr.ErrorCode)
		}

		return microerror.Maskf(keyvault.ResourceOperationError, "%s: %d %s", message, respErr.StatusCode, respErr.ErrorCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return microerror.Maskf(keyvault.ResourceOperationError, "%s: timed out", message)
	}

	return microerror.Maskf(keyvault.ResourceOperationError, "%s: %s", message, err.Error())
}
