// Package chain implements the contract.NodeClient against a Move chain
// node's REST API.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/movelabhq/movelab/domain/contract"
)

const defaultTimeout = 15 * time.Second

// NodeError is a non-2xx response from the node.
type NodeError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("node returned %d (%s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("node returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a node 404, which the API maps to
// "account has no published state" rather than a failure.
func IsNotFound(err error) bool {
	var nodeErr *NodeError
	return errors.As(err, &nodeErr) && nodeErr.StatusCode == http.StatusNotFound
}

// Client reads published modules, resources and view-function results from
// a node's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a Client against baseURL, which must include the API
// version prefix, e.g. https://node.example.com/v1.
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Node REST response shapes.
type moduleResponse struct {
	Bytecode string     `json:"bytecode"`
	ABI      *moduleABI `json:"abi"`
}

type moduleABI struct {
	Address          string        `json:"address"`
	Name             string        `json:"name"`
	ExposedFunctions []functionABI `json:"exposed_functions"`
}

type functionABI struct {
	Name              string   `json:"name"`
	Visibility        string   `json:"visibility"`
	IsEntry           bool     `json:"is_entry"`
	IsView            bool     `json:"is_view"`
	GenericTypeParams []any    `json:"generic_type_params"`
	Params            []string `json:"params"`
	Return            []string `json:"return"`
}

type resourceResponse struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

// Modules returns the modules published under address.
func (c *Client) Modules(ctx context.Context, address contract.Address) ([]contract.Module, error) {
	var responses []moduleResponse
	path := fmt.Sprintf("/accounts/%s/modules", address.String())
	if err := c.get(ctx, path, &responses); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch modules for %s: %w", address.String(), err)
	}

	modules := make([]contract.Module, 0, len(responses))
	for _, resp := range responses {
		if resp.ABI == nil {
			continue
		}
		functions := make([]contract.Function, 0, len(resp.ABI.ExposedFunctions))
		for _, fn := range resp.ABI.ExposedFunctions {
			functions = append(functions, contract.NewFunction(
				fn.Name,
				fn.Visibility,
				fn.IsEntry,
				fn.IsView,
				len(fn.GenericTypeParams),
				fn.Params,
				fn.Return,
			))
		}
		modules = append(modules, contract.NewModule(address, resp.ABI.Name, functions))
	}
	return modules, nil
}

// Resources returns the resources stored under address.
func (c *Client) Resources(ctx context.Context, address contract.Address) ([]contract.Resource, error) {
	var responses []resourceResponse
	path := fmt.Sprintf("/accounts/%s/resources", address.String())
	if err := c.get(ctx, path, &responses); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch resources for %s: %w", address.String(), err)
	}

	resources := make([]contract.Resource, 0, len(responses))
	for _, resp := range responses {
		resources = append(resources, contract.NewResource(resp.Type, resp.Data))
	}
	return resources, nil
}

// View executes a read-only function call.
func (c *Client) View(ctx context.Context, request contract.ViewRequest) ([]json.RawMessage, error) {
	body := viewRequest{
		Function:      request.Function,
		TypeArguments: request.TypeArguments,
		Arguments:     request.Arguments,
	}
	if body.TypeArguments == nil {
		body.TypeArguments = []string{}
	}
	if body.Arguments == nil {
		body.Arguments = []any{}
	}

	var results []json.RawMessage
	if err := c.post(ctx, "/view", body, &results); err != nil {
		return nil, fmt.Errorf("view %s: %w", request.Function, err)
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request node: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeNodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeNodeError(resp *http.Response) error {
	nodeErr := &NodeError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		nodeErr.Message = resp.Status
		return nodeErr
	}

	var parsed struct {
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		nodeErr.Message = parsed.Message
		nodeErr.ErrorCode = parsed.ErrorCode
	} else {
		nodeErr.Message = string(body)
	}
	return nodeErr
}
