// Package network provides the shared HTTP transport used for backend communication.
package network

import (
	"net/http"
	"time"

	"github.com/grundrisse/grundrisse/key"
	"github.com/spf13/viper"
)

// Transport is shared by every client so idle connections are reused across requests.
var Transport = newTransport()

// NewClient returns an HTTP client bounded by the given timeout.
// A non-positive timeout disables the client-level deadline; request contexts still apply.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   max(timeout, 0),
		Transport: Transport,
	}
}

// Client returns an HTTP client bounded by the api.timeout setting, in seconds.
func Client() *http.Client {
	return NewClient(time.Duration(viper.GetInt(key.APITimeout)) * time.Second)
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
