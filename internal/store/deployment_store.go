package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"msigctl/internal/domain"
)

// ErrNoDeployment is returned when the registry has no entry for a name.
var ErrNoDeployment = errors.New("deployment not found")

// DeploymentFileStore reads deployments written by hardhat-deploy:
// <dir>/<network>/<Name>.json with at least an "address" field.
type DeploymentFileStore struct {
	dir     string
	network string
}

// NewDeploymentFileStore returns a registry over the deployments of network.
func NewDeploymentFileStore(dir, network string) *DeploymentFileStore {
	return &DeploymentFileStore{dir: dir, network: network}
}

// Deployment loads the deployment file of name.
func (s *DeploymentFileStore) Deployment(ctx context.Context, name string) (domain.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deployment{}, err
	}
	path := filepath.Join(s.dir, s.network, name+".json")

	var d domain.Deployment
	found, err := readJSON(path, &d)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("read deployment %s: %w", path, err)
	}
	if !found || d.Address == (common.Address{}) {
		return domain.Deployment{}, fmt.Errorf("%w: %s on %s", ErrNoDeployment, name, s.network)
	}
	d.Name = name
	return d, nil
}

// StaticDeployments is a registry backed by explicit configuration entries.
type StaticDeployments map[string]common.Address

// Deployment returns the configured address of name.
func (s StaticDeployments) Deployment(ctx context.Context, name string) (domain.Deployment, error) {
	addr, ok := s[name]
	if !ok {
		return domain.Deployment{}, fmt.Errorf("%w: %s", ErrNoDeployment, name)
	}
	return domain.Deployment{Name: name, Address: addr}, nil
}

// Deployments consults registries in order and returns the first hit.
type Deployments []domain.DeploymentRegistry

// Deployment returns the first registry entry found for name. Errors other
// than ErrNoDeployment stop the search.
func (d Deployments) Deployment(ctx context.Context, name string) (domain.Deployment, error) {
	for _, r := range d {
		dep, err := r.Deployment(ctx, name)
		if err == nil {
			return dep, nil
		}
		if !errors.Is(err, ErrNoDeployment) {
			return domain.Deployment{}, err
		}
	}
	return domain.Deployment{}, fmt.Errorf("%w: %s", ErrNoDeployment, name)
}

// Compile-time assertions that the registries implement domain.DeploymentRegistry.
var (
	_ domain.DeploymentRegistry = (*DeploymentFileStore)(nil)
	_ domain.DeploymentRegistry = StaticDeployments(nil)
	_ domain.DeploymentRegistry = Deployments(nil)
)
