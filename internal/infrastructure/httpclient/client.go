// Package httpclient builds the HTTP clients handed to the API client libraries.
package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Options configures one HTTP client instance.
type Options struct {
	Timeout time.Duration
	Proxy   string
}

// New returns a client with its own transport. A proxy applies to this client
// only; process-wide proxy variables are still honored when Proxy is empty.
func New(opts Options) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	proxyURL, err := ParseProxy(opts.Proxy)
	if err != nil {
		return nil, err
	}
	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}, nil
}

// ParseProxy normalizes a proxy address. Blank means no proxy; an address
// without a scheme is treated as plain HTTP.
func ParseProxy(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil //nolint:nilnil // no proxy configured
	}
	if !strings.HasPrefix(raw, "http") && !strings.HasPrefix(raw, "socks5") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy address %q", raw)
	}
	return u, nil
}
