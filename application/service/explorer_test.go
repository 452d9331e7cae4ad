package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/movelabhq/movelab/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	modules   []contract.Module
	resources []contract.Resource
	views     []json.RawMessage
	err       error
}

func (f *fakeNode) Modules(ctx context.Context, address contract.Address) ([]contract.Module, error) {
	return f.modules, f.err
}

func (f *fakeNode) Resources(ctx context.Context, address contract.Address) ([]contract.Resource, error) {
	return f.resources, f.err
}

func (f *fakeNode) View(ctx context.Context, request contract.ViewRequest) ([]json.RawMessage, error) {
	return f.views, f.err
}

func TestExplorerService_Explore(t *testing.T) {
	addr, err := contract.NewAddress("0x1")
	require.NoError(t, err)

	node := &fakeNode{
		modules:   []contract.Module{contract.NewModule(addr, "counter", nil)},
		resources: []contract.Resource{contract.NewResource("0x1::counter::Counter", json.RawMessage(`{"value":"1"}`))},
	}
	s := NewExplorerService(node)

	state, err := s.Explore(context.Background(), "0x1")
	require.NoError(t, err)
	assert.Equal(t, "0x1", state.Address.String())
	require.Len(t, state.Modules, 1)
	require.Len(t, state.Resources, 1)
}

func TestExplorerService_ExploreInvalidAddress(t *testing.T) {
	s := NewExplorerService(&fakeNode{})

	_, err := s.Explore(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExplorerService_ExplorePropagatesNodeErrors(t *testing.T) {
	nodeErr := errors.New("node down")
	s := NewExplorerService(&fakeNode{err: nodeErr})

	_, err := s.Explore(context.Background(), "0x1")
	assert.ErrorIs(t, err, nodeErr)
}

func TestExplorerService_CallView(t *testing.T) {
	s := NewExplorerService(&fakeNode{views: []json.RawMessage{json.RawMessage(`"42"`)}})

	results, err := s.CallView(context.Background(), contract.ViewRequest{Function: "0x1::counter::get"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, `"42"`, results[0])
}

func TestExplorerService_CallViewValidatesFunctionTag(t *testing.T) {
	s := NewExplorerService(&fakeNode{})

	for _, tag := range []string{"", "counter::get", "0x1::counter", "0xzz::m::f"} {
		_, err := s.CallView(context.Background(), contract.ViewRequest{Function: tag})
		assert.ErrorIs(t, err, ErrInvalidInput, "tag %q", tag)
	}
}
