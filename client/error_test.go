package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/giantswarm/keyvault-lifecycle/pkg/keyvault"
)

func Test_classify(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		errorMatcher func(err error) bool
	}{
		{
			name:         "case 0: rejected credential",
			err:          &azidentity.AuthenticationFailedError{},
			errorMatcher: keyvault.IsAuthentication,
		},
		{
			name:         "case 1: unauthorized response",
			err:          &azcore.ResponseError{StatusCode: http.StatusUnauthorized, ErrorCode: "InvalidAuthenticationToken"},
			errorMatcher: keyvault.IsAuthentication,
		},
		{
			name:         "case 2: forbidden response",
			err:          &azcore.ResponseError{StatusCode: http.StatusForbidden, ErrorCode: "AuthorizationFailed"},
			errorMatcher: keyvault.IsAuthentication,
		},
		{
			name:         "case 3: not found response",
			err:          fmt.Errorf("get: %w", &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "ResourceNotFound"}),
			errorMatcher: keyvault.IsNotFound,
		},
		{
			name:         "case 4: conflict response",
			err:          &azcore.ResponseError{StatusCode: http.StatusConflict, ErrorCode: "VaultAlreadyExists"},
			errorMatcher: keyvault.IsResourceOperation,
		},
		{
			name:         "case 5: timeout",
			err:          context.DeadlineExceeded,
			errorMatcher: keyvault.IsResourceOperation,
		},
		{
			name:         "case 6: transport failure",
			err:          errors.New("connection reset by peer"),
			errorMatcher: keyvault.IsResourceOperation,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			err := classify(tc.err, "doing %s", "something")
			if !tc.errorMatcher(err) {
				t.Fatalf("error == %#v, want matching", err)
			}
		})
	}
}
