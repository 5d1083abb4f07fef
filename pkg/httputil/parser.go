// Package httputil provides HTTP header parsers for throttled Azure API
// responses.
package httputil

import (
	"net/http"
	"strconv"
	"time"

	"github.com/giantswarm/microerror"
)

// Millisecond variants take precedence over Retry-After, the same way the
// Azure SDK evaluates them.
var retryAfterMillisecondHeaders = []string{
	"Retry-After-Ms",
	"X-Ms-Retry-After-Ms",
}

// ParseRetryAfter returns the point in time after which the request may be
// issued again, relative to now. Retry-After may hold <delay-seconds> or an
// <http-date>; with multiple values the first parseable one wins. A nil
// response, a missing or an unparseable header yields a parseError.
func ParseRetryAfter(r *http.Response, now time.Time) (time.Time, error) {
	if r == nil {
		return time.Time{}, microerror.Maskf(parseError, "nil response")
	}

	for _, h := range retryAfterMillisecondHeaders {
		for _, v := range r.Header.Values(h) {
			ms, err := strconv.ParseInt(v, 10, 64)
			if err == nil && ms > 0 {
				return now.Add(time.Duration(ms) * time.Millisecond), nil
			}
		}
	}

	for _, v := range r.Header.Values("Retry-After") {
		s, err := strconv.ParseInt(v, 10, 32)
		if err == nil && s > 0 {
			return now.Add(time.Duration(s) * time.Second), nil
		}

		t, err := http.ParseTime(v)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, microerror.Maskf(parseError, "parseable Retry-After missing")
}
