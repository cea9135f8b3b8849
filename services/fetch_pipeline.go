package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/phdonas/site/config"
)

// ErrAllStrategiesFailed is returned when every configured strategy was
// exhausted without yielding usable JSON. It is the pipeline's only failure
// mode: individual strategy errors never escape to callers.
var ErrAllStrategiesFailed = errors.New("all fetch strategies failed")

// ContentFetcher retrieves parsed JSON for a logical WordPress path.
type ContentFetcher interface {
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
}

// FetchPipeline tries an ordered list of physical strategies for the same
// logical request: direct calls against the WordPress host first, then public
// CORS relays that wrap the target URL. Strategies run sequentially, each
// bounded by its own timeout; the first one that yields valid JSON wins and no
// further strategies are attempted. The host sits behind hosting-provider
// infrastructure that intermittently blocks direct requests, hence the relays.
type FetchPipeline struct {
	client     *http.Client
	strategies []config.FetchStrategy
	timeout    time.Duration
}

// NewFetchPipeline creates a pipeline over the given ordered strategies.
func NewFetchPipeline(strategies []config.FetchStrategy, timeout time.Duration) *FetchPipeline {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FetchPipeline{
		client:     &http.Client{},
		strategies: strategies,
		timeout:    timeout,
	}
}

// Fetch resolves the logical path through the strategy list. On success the
// parsed-and-validated JSON payload is returned; on exhaustion the error is
// ErrAllStrategiesFailed and callers degrade to cache or placeholder data.
func (p *FetchPipeline) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	for _, strategy := range p.strategies {
		requestURL, err := p.buildURL(strategy, path)
		if err != nil {
			log.Printf("WARN: [FetchPipeline] Strategy '%s' skipped: %v", strategy.Name, err)
			continue
		}

		payload, err := p.attempt(ctx, strategy, requestURL)
		if err != nil {
			// Transient retrievable failure: advance to the next strategy.
			log.Printf("WARN: [FetchPipeline] Strategy '%s' failed for '%s': %v", strategy.Name, path, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		log.Printf("INFO: [FetchPipeline] Strategy '%s' succeeded for '%s'.", strategy.Name, path)
		return payload, nil
	}
	return nil, ErrAllStrategiesFailed
}

// buildURL resolves the physical URL for one strategy. Proxy strategies wrap
// the primary direct URL as a query parameter.
func (p *FetchPipeline) buildURL(strategy config.FetchStrategy, path string) (string, error) {
	switch strategy.Kind {
	case config.StrategyDirect:
		return strategy.BaseURL + path, nil
	case config.StrategyProxy:
		target := p.primaryTarget(path)
		if target == "" {
			return "", errors.New("no direct strategy configured to wrap")
		}
		return strategy.BaseURL + url.QueryEscape(target), nil
	default:
		return "", fmt.Errorf("unknown strategy kind '%s'", strategy.Kind)
	}
}

// primaryTarget returns the URL a relay should proxy: the first direct
// strategy's base plus the logical path.
func (p *FetchPipeline) primaryTarget(path string) string {
	for _, strategy := range p.strategies {
		if strategy.Kind == config.StrategyDirect {
			return strategy.BaseURL + path
		}
	}
	return ""
}

// attempt performs one bounded GET and validates its payload.
func (p *FetchPipeline) attempt(ctx context.Context, strategy config.FetchStrategy, requestURL string) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if strategy.Kind == config.StrategyProxy {
		body, err = unwrapRelayEnvelope(body)
		if err != nil {
			return nil, err
		}
	}

	return validatePayload(body)
}

// relayEnvelope is the JSON wrapper some relays put around the proxied body.
type relayEnvelope struct {
	Contents string `json:"contents"`
	Status   struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
}

// unwrapRelayEnvelope extracts the proxied body from a relay response.
// Relays come in two flavors: an envelope with the body serialized into a
// string field, or a raw passthrough. A response that is not an envelope is
// assumed to be the body itself.
func unwrapRelayEnvelope(body []byte) ([]byte, error) {
	var envelope relayEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Contents != "" {
		if envelope.Status.HTTPCode != 0 && (envelope.Status.HTTPCode < 200 || envelope.Status.HTTPCode > 299) {
			return nil, fmt.Errorf("relay reported upstream status %d", envelope.Status.HTTPCode)
		}
		return []byte(envelope.Contents), nil
	}
	return body, nil
}

// validatePayload accepts only a non-empty JSON array or a JSON object
// without a WordPress error "code" field.
func validatePayload(body []byte) (json.RawMessage, error) {
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	switch value := parsed.(type) {
	case []interface{}:
		if len(value) == 0 {
			return nil, errors.New("response is an empty array")
		}
	case map[string]interface{}:
		if code, exists := value["code"]; exists {
			return nil, fmt.Errorf("response is an error envelope (code: %v)", code)
		}
	default:
		return nil, errors.New("response is neither an array nor an object")
	}

	return json.RawMessage(body), nil
}
