// Package netx builds the HTTP transport used by the API gateway.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodySize caps how much of a response body is read into memory.
const MaxBodySize = 8 << 20

// NewHTTPClient returns a client with its own transport and an overall
// request timeout. A zero timeout leaves requests bounded only by ctx.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ReadBody reads at most MaxBodySize bytes of resp.Body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) > MaxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodySize)
	}
	return b, nil
}
