package app

import (
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/domain"
)

// App is what commands work with. Every field is an interface so commands
// can be tested without a node.
type App struct {
	Resolver domain.TargetResolver
	Accounts domain.AccountRegistry
	Actions  domain.MultisigActions
	Owners   domain.OwnerManager
	Log      log.Logger

	closer func()
}

func New(
	resolver domain.TargetResolver,
	accounts domain.AccountRegistry,
	actions domain.MultisigActions,
	owners domain.OwnerManager,
	logger log.Logger,
	closer func(),
) *App {
	return &App{
		Resolver: resolver,
		Accounts: accounts,
		Actions:  actions,
		Owners:   owners,
		Log:      logger,
		closer:   closer,
	}
}

// Close releases whatever the app holds. It is safe to call more than once.
func (a *App) Close() {
	if a.closer != nil {
		a.closer()
		a.closer = nil
	}
}
