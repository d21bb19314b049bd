// Package gateway holds the clients of the collaborating services. Every
// collaborator has a mock and a real backend; config picks one at startup.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/SergeyBogomolovv/order-orchestrator/internal/gateway"

// DefaultTimeout bounds every outbound call when config does not say otherwise.
const DefaultTimeout = 5 * time.Second

// client is a traced JSON-over-HTTP client bound to one collaborator.
// Each call gets its own deadline and is attempted exactly once.
type client struct {
	name    string
	baseURL string
	timeout time.Duration
	http    *http.Client
	tracer  trace.Tracer
}

type response struct {
	status int
	body   []byte
}

func newClient(name, baseURL string, timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tracer: otel.Tracer(tracerName),
	}
}

func (c *client) do(ctx context.Context, method, path string, payload any, header http.Header) (response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	ctx, span := c.tracer.Start(ctx, "call-"+c.name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("failed to marshal %s request: %w", c.name, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		span.RecordError(err)
		return response{}, fmt.Errorf("failed to build %s request: %w", c.name, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return response{}, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return response{}, fmt.Errorf("failed to read %s response: %w", c.name, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// expect turns any status other than want into an error.
func (c *client) expect(resp response, want int) error {
	if resp.status != want {
		return fmt.Errorf("%s returned status %d: %s", c.name, resp.status, strings.TrimSpace(string(resp.body)))
	}
	return nil
}
