package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/movelabhq/movelab/domain/contract"
	"golang.org/x/sync/errgroup"
)

// ExplorerService reads published contract state for the explorer view.
type ExplorerService struct {
	node contract.NodeClient
}

// NewExplorerService creates an ExplorerService.
func NewExplorerService(node contract.NodeClient) *ExplorerService {
	return &ExplorerService{node: node}
}

// AccountState is everything the explorer shows for one account.
type AccountState struct {
	Address   contract.Address
	Modules   []contract.Module
	Resources []contract.Resource
}

// Explore fetches an account's modules and resources concurrently.
func (s *ExplorerService) Explore(ctx context.Context, rawAddress string) (AccountState, error) {
	if s.node == nil {
		return AccountState{}, fmt.Errorf("%w: no chain node configured", ErrNotConfigured)
	}
	address, err := contract.NewAddress(rawAddress)
	if err != nil {
		return AccountState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state := AccountState{Address: address}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		modules, err := s.node.Modules(ctx, address)
		if err != nil {
			return err
		}
		state.Modules = modules
		return nil
	})
	g.Go(func() error {
		resources, err := s.node.Resources(ctx, address)
		if err != nil {
			return err
		}
		state.Resources = resources
		return nil
	})
	if err := g.Wait(); err != nil {
		return AccountState{}, err
	}

	return state, nil
}

var functionTagPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}::[A-Za-z_][A-Za-z0-9_]*::[A-Za-z_][A-Za-z0-9_]*$`)

// CallView executes a read-only view function and returns the raw results.
func (s *ExplorerService) CallView(ctx context.Context, request contract.ViewRequest) ([]string, error) {
	if s.node == nil {
		return nil, fmt.Errorf("%w: no chain node configured", ErrNotConfigured)
	}
	if !functionTagPattern.MatchString(request.Function) {
		return nil, fmt.Errorf("%w: function %q is not an address::module::name tag", ErrInvalidInput, request.Function)
	}

	raw, err := s.node.View(ctx, request)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(raw))
	for i, r := range raw {
		results[i] = string(r)
	}
	return results, nil
}
