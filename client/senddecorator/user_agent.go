package senddecorator

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// UserAgent appends the given value to the User-Agent header the SDK
// telemetry policy has set. It carries the Azure Partner Program ID, which
// does not fit the SDK's 24 character application ID.
func UserAgent(value string) policy.Policy {
	return policyFunc(func(req *policy.Request) (*http.Response, error) {
		header := req.Raw().Header

		ua := header.Get("User-Agent")
		if ua == "" {
			header.Set("User-Agent", value)
		} else {
			header.Set("User-Agent", ua+" "+value)
		}

		return req.Next()
	})
}
