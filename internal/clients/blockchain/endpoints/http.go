package endpoints

import (
	"net/http"
	"time"

	tracehttp "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"
)

type (
	ClientOption func(opts *clientOptions)

	clientOptions struct {
		timeout         time.Duration
		idleConnTimeout time.Duration
		maxConns        int
	}
)

const (
	defaultTimeout         = 30 * time.Second
	defaultIdleConnTimeout = 90 * time.Second
	defaultMaxConns        = 100
)

// WithTimeout overrides the end-to-end timeout of a single http request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(opts *clientOptions) {
		opts.timeout = timeout
	}
}

func newHTTPClient(opts ...ClientOption) (*http.Client, error) {
	options := &clientOptions{
		timeout:         defaultTimeout,
		idleConnTimeout: defaultIdleConnTimeout,
		maxConns:        defaultMaxConns,
	}
	for _, opt := range opts {
		opt(options)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.IdleConnTimeout = options.idleConnTimeout
	transport.MaxIdleConns = options.maxConns
	// MaxIdleConnsPerHost defaults to 2 and every request of a group goes to a handful of hosts.
	transport.MaxIdleConnsPerHost = options.maxConns

	return tracehttp.WrapClient(&http.Client{
		Timeout:   options.timeout,
		Transport: transport,
	}), nil
}
