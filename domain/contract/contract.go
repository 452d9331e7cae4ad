// Package contract models on-chain Move packages as read by the explorer:
// account addresses, published modules with their entry and view functions,
// and resources stored under an account.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidAddress indicates an account address is not valid hex.
var ErrInvalidAddress = errors.New("invalid account address")

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// Address is a hex-encoded account address.
type Address struct {
	value string
}

// NewAddress validates and normalizes an account address.
func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if !addressPattern.MatchString(value) {
		return Address{}, ErrInvalidAddress
	}
	return Address{value: strings.ToLower(value)}, nil
}

// String returns the normalized address.
func (a Address) String() string {
	return a.value
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a.value == ""
}

// Function is one function exposed by a published module.
type Function struct {
	name              string
	visibility        string
	isEntry           bool
	isView            bool
	genericTypeParams int
	params            []string
	returns           []string
}

// NewFunction creates a Function.
func NewFunction(name, visibility string, isEntry, isView bool, genericTypeParams int, params, returns []string) Function {
	f := Function{
		name:              name,
		visibility:        visibility,
		isEntry:           isEntry,
		isView:            isView,
		genericTypeParams: genericTypeParams,
	}
	f.params = make([]string, len(params))
	copy(f.params, params)
	f.returns = make([]string, len(returns))
	copy(f.returns, returns)
	return f
}

// Name returns the function name.
func (f Function) Name() string {
	return f.name
}

// Visibility returns the declared visibility.
func (f Function) Visibility() string {
	return f.visibility
}

// IsEntry reports whether the function can be called in a transaction.
func (f Function) IsEntry() bool {
	return f.isEntry
}

// IsView reports whether the function can be called read-only.
func (f Function) IsView() bool {
	return f.isView
}

// GenericTypeParams returns the number of generic type parameters.
func (f Function) GenericTypeParams() int {
	return f.genericTypeParams
}

// Params returns the parameter type tags.
func (f Function) Params() []string {
	params := make([]string, len(f.params))
	copy(params, f.params)
	return params
}

// Returns returns the return type tags.
func (f Function) Returns() []string {
	returns := make([]string, len(f.returns))
	copy(returns, f.returns)
	return returns
}

// Module is one Move module published under an account.
type Module struct {
	address   Address
	name      string
	functions []Function
}

// NewModule creates a Module.
func NewModule(address Address, name string, functions []Function) Module {
	m := Module{address: address, name: name}
	m.functions = make([]Function, len(functions))
	copy(m.functions, functions)
	return m
}

// Address returns the publishing account.
func (m Module) Address() Address {
	return m.address
}

// Name returns the module name.
func (m Module) Name() string {
	return m.name
}

// Functions returns the exposed functions.
func (m Module) Functions() []Function {
	functions := make([]Function, len(m.functions))
	copy(functions, m.functions)
	return functions
}

// ViewFunctions returns only the view functions.
func (m Module) ViewFunctions() []Function {
	var views []Function
	for _, f := range m.functions {
		if f.IsView() {
			views = append(views, f)
		}
	}
	return views
}

// FullyQualifiedName returns the address::name form used in type tags.
func (m Module) FullyQualifiedName() string {
	return m.address.String() + "::" + m.name
}

// Resource is one typed value stored under an account.
type Resource struct {
	typeTag string
	data    json.RawMessage
}

// NewResource creates a Resource.
func NewResource(typeTag string, data json.RawMessage) Resource {
	return Resource{typeTag: typeTag, data: data}
}

// TypeTag returns the fully qualified resource type.
func (r Resource) TypeTag() string {
	return r.typeTag
}

// Data returns the resource fields as raw JSON.
func (r Resource) Data() json.RawMessage {
	return r.data
}

// ViewRequest is one read-only function call.
type ViewRequest struct {
	Function      string
	TypeArguments []string
	Arguments     []any
}

// NodeClient reads published state from a chain node's REST API.
type NodeClient interface {
	// Modules returns the modules published under address.
	Modules(ctx context.Context, address Address) ([]Module, error)
	// Resources returns the resources stored under address.
	Resources(ctx context.Context, address Address) ([]Resource, error)
	// View executes a read-only function and returns its results.
	View(ctx context.Context, request ViewRequest) ([]json.RawMessage, error)
}
