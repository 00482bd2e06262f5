// Package evaluator is the client for the external upgrade-assurance
// service, which owns the semantics of every readiness check and snapshot
// comparison. This package only ships directive lists to it and returns its
// results unmodified; it never retries and never interprets a result beyond
// decoding the response envelope.
package evaluator

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"k8s.io/klog/v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/constants"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/directive"
	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/version"
)

const (
	readinessPath = "/api/v1/readiness"
	snapshotsPath = "/api/v1/snapshots"
	comparePath   = "/api/v1/compare"
)

// Check states reported by the evaluator.
const (
	StatePass = "pass"
	StateFail = "fail"
)

// CheckResult is the outcome of a single readiness check.
type CheckResult struct {
	State  string `json:"state"`
	Reason string `json:"reason"`
}

// Passed reports whether the check succeeded.
func (r CheckResult) Passed() bool {
	return r.State == StatePass
}

// CheckResults maps a check identifier to its outcome.
type CheckResults map[string]CheckResult

// ComparisonResults maps a comparison identifier to its raw report. The
// report schema is owned by the evaluator; the only field this tool ever
// reads from it is "passed".
type ComparisonResults map[string]json.RawMessage

// Client talks to an upgrade-assurance evaluator service.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// ClientOptions configures the evaluator client.
type ClientOptions struct {
	Endpoint           string
	APIKey             string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// NewClient creates an evaluator client.
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		return nil, errors.New("options cannot be nil")
	}

	if opts.Endpoint == "" {
		return nil, errors.New("evaluator endpoint is required")
	}

	if _, err := url.Parse(opts.Endpoint); err != nil {
		return nil, errors.Wrap(err, "invalid evaluator endpoint URL")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = constants.DEFAULT_EVALUATOR_TIMEOUT
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		endpoint:   strings.TrimSuffix(opts.Endpoint, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
	}, nil
}

type readinessRequest struct {
	Serial string                `json:"serial"`
	Checks []directive.Directive `json:"checks"`
}

type readinessResponse struct {
	Results CheckResults `json:"results"`
}

// RunReadinessChecks submits a compiled check directive list for execution
// against the firewall identified by serial.
func (c *Client) RunReadinessChecks(ctx context.Context, serial string, checks []directive.Directive) (CheckResults, error) {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, "Run readiness checks")
	span.SetAttributes(attribute.Int("checks", len(checks)))
	defer span.End()

	klog.V(2).Infof("submitting %d readiness check directives for %s", len(checks), serial)

	var response readinessResponse
	if err := c.post(ctx, readinessPath, readinessRequest{Serial: serial, Checks: checks}, &response); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to run readiness checks")
	}

	return response.Results, nil
}

type snapshotRequest struct {
	Serial string   `json:"serial"`
	Types  []string `json:"types"`
}

// RunSnapshots captures the requested snapshot areas and returns the
// evaluator's snapshot document as an opaque blob.
func (c *Client) RunSnapshots(ctx context.Context, serial string, types []string) (json.RawMessage, error) {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, "Run snapshot")
	span.SetAttributes(attribute.Int("types", len(types)))
	defer span.End()

	klog.V(2).Infof("capturing snapshot areas %v for %s", types, serial)

	var snapshot json.RawMessage
	if err := c.post(ctx, snapshotsPath, snapshotRequest{Serial: serial, Types: types}, &snapshot); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to run snapshot")
	}

	return snapshot, nil
}

type compareRequest struct {
	Left    json.RawMessage       `json:"left"`
	Right   json.RawMessage       `json:"right"`
	Reports []directive.Directive `json:"reports"`
}

type compareResponse struct {
	Results ComparisonResults `json:"results"`
}

// CompareSnapshots compares two previously captured snapshot documents
// using a compiled comparison directive list.
func (c *Client) CompareSnapshots(ctx context.Context, left, right json.RawMessage, reports []directive.Directive) (ComparisonResults, error) {
	ctx, span := otel.Tracer(constants.LIB_TRACER_NAME).Start(ctx, "Compare snapshots")
	span.SetAttributes(attribute.Int("reports", len(reports)))
	defer span.End()

	klog.V(2).Infof("submitting %d comparison directives", len(reports))

	var response compareResponse
	if err := c.post(ctx, comparePath, compareRequest{Left: left, Right: right, Reports: reports}, &response); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to compare snapshots")
	}

	return response.Results, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewBuffer(b))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", constants.DEFAULT_CLIENT_USER_AGENT, version.Version()))
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Surface the service's own message when it sends one.
		var serviceErr errorResponse
		if err := json.Unmarshal(body, &serviceErr); err == nil && serviceErr.Error != "" {
			return errors.Errorf("evaluator returned %d: %s", resp.StatusCode, serviceErr.Error)
		}
		return errors.Errorf("evaluator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}
