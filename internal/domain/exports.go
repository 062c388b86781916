package domain

import (
	interfaces "msigctl/internal/domain/interfaces"
	types "msigctl/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	TxID             = types.TxID
	ActionKind       = types.ActionKind
	ActionStatus     = types.ActionStatus
	ActionResult     = types.ActionResult
	TxRecord         = types.TxRecord
	Submission       = types.Submission
	OwnerSet         = types.OwnerSet
	Deployment       = types.Deployment
	Resolution       = types.Resolution
	ResolutionSource = types.ResolutionSource
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CodeReader         = interfaces.CodeReader
	DeploymentRegistry = interfaces.DeploymentRegistry
	AccountRegistry    = interfaces.AccountRegistry
	MultisigActions    = interfaces.MultisigActions
	OwnerManager       = interfaces.OwnerManager
	Transactors        = interfaces.Transactors
	KeyStore           = interfaces.KeyStore
	TargetResolver     = interfaces.TargetResolver
)

const (
	ActionSign        = types.ActionSign
	ActionExecute     = types.ActionExecute
	ActionCheckStatus = types.ActionCheckStatus
	ActionRevoke      = types.ActionRevoke

	StatusConfirmed = types.StatusConfirmed
	StatusExecuted  = types.StatusExecuted
	StatusRevoked   = types.StatusRevoked
	StatusChecked   = types.StatusChecked
	StatusSkipped   = types.StatusSkipped

	ResolvedDefault  = types.ResolvedDefault
	ResolvedExplicit = types.ResolvedExplicit
)

// MultisigWalletName is the registry name of the default wallet deployment.
const MultisigWalletName = "MultiSigWallet"

var (
	ErrInvalidTxID = types.ErrInvalidTxID
)
