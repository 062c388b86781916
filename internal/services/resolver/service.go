package resolver

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/crypto"
	"msigctl/internal/domain"
)

// Service resolves wallet candidates against the chain and a deployment
// registry.
type Service struct {
	code     domain.CodeReader
	registry domain.DeploymentRegistry
	name     string
	log      log.Logger
}

// New constructs a resolver that falls back to the MultiSigWallet deployment.
func New(
	code domain.CodeReader,
	registry domain.DeploymentRegistry,
	logger log.Logger,
) *Service {
	return &Service{
		code:     code,
		registry: registry,
		name:     domain.MultisigWalletName,
		log:      logger,
	}
}

// Resolve returns the wallet to use for candidate.
//
// Steps:
//  1. A candidate that is not a syntactically valid address, or is the zero
//     address, selects the default without touching the chain.
//  2. Otherwise the code at the candidate is read once. Empty code selects
//     the default; a failed read is returned as an error.
//  3. The default is looked up in the deployment registry.
func (s *Service) Resolve(ctx context.Context, candidate string) (domain.Resolution, error) {
	if candidate == "" {
		return s.fallback(ctx, candidate, "no address given", false)
	}
	if !crypto.IsAddress(candidate) {
		return s.fallback(ctx, candidate, "not a valid address", true)
	}
	addr := common.HexToAddress(candidate)
	if addr == (common.Address{}) {
		return s.fallback(ctx, candidate, "zero address", false)
	}

	code, err := s.code.CodeAt(ctx, addr)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve multisig %s: %w", addr.Hex(), err)
	}
	if len(code) == 0 {
		return s.fallback(ctx, candidate, "no contract code at address", true)
	}

	s.log.Debug("Using explicit multisig", "address", addr)
	return domain.Resolution{
		Source:    domain.ResolvedExplicit,
		Address:   addr,
		Requested: candidate,
	}, nil
}

// fallback selects the default deployment. warn marks candidates the operator
// typed on purpose; an empty or zero candidate is the normal way to ask for
// the default.
func (s *Service) fallback(ctx context.Context, candidate, reason string, warn bool) (domain.Resolution, error) {
	dep, err := s.registry.Deployment(ctx, s.name)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve default multisig: %w", err)
	}

	logFn := s.log.Debug
	if warn {
		logFn = s.log.Warn
	}
	logFn("Using default multisig", "requested", candidate, "reason", reason, "address", dep.Address)

	return domain.Resolution{
		Source:    domain.ResolvedDefault,
		Address:   dep.Address,
		Requested: candidate,
		Reason:    reason,
	}, nil
}

var _ domain.TargetResolver = (*Service)(nil)
