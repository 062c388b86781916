package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/domain"
)

// ErrUnknownAction is returned for an ActionKind the dispatcher cannot run.
var ErrUnknownAction = errors.New("unknown action")

// Batch is one dispatcher invocation.
type Batch struct {
	IDs    []domain.TxID
	Kind   domain.ActionKind
	Wallet common.Address
	Signer common.Address // unused by ActionCheckStatus
}

// Outcome is the result of the action on one id.
type Outcome struct {
	Index  int
	ID     domain.TxID
	Result domain.ActionResult
	Err    error
}

// Report lists the outcome of every id that was attempted, in order.
type Report struct {
	Kind     domain.ActionKind
	Wallet   common.Address
	Outcomes []Outcome
}

// Failed returns the outcomes that ended in an error.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Count returns how many attempted ids finished with status.
func (r Report) Count(status domain.ActionStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Result.Status == status {
			n++
		}
	}
	return n
}

// BatchError names the id whose action failed.
type BatchError struct {
	Index int
	ID    domain.TxID
	Kind  domain.ActionKind
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s tx %s (item %d): %v", e.Kind, e.ID, e.Index+1, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Options tune a Dispatcher.
type Options struct {
	// ContinueOnError attempts every id and joins all failures instead of
	// stopping at the first one.
	ContinueOnError bool
}

// Dispatcher sequences single-id actions.
type Dispatcher struct {
	actions domain.MultisigActions
	opts    Options
	log     log.Logger
}

// New constructs a Dispatcher over actions.
func New(actions domain.MultisigActions, opts Options, logger log.Logger) *Dispatcher {
	return &Dispatcher{actions: actions, opts: opts, log: logger}
}

// Run performs b.Kind on every id of b.IDs in order.
//
// Each call returns before the next starts; state-changing actions return
// only once their transaction is mined. A cancelled ctx stops the batch
// before the next id. The report always holds the outcomes of the ids that
// were attempted.
func (d *Dispatcher) Run(ctx context.Context, b Batch) (Report, error) {
	rep := Report{Kind: b.Kind, Wallet: b.Wallet}
	action, err := d.action(b)
	if err != nil {
		return rep, err
	}

	d.log.Info("Starting batch", "action", b.Kind, "wallet", b.Wallet, "ids", len(b.IDs))
	var errs []error
	for i, id := range b.IDs {
		if err := ctx.Err(); err != nil {
			d.log.Warn("Batch interrupted", "action", b.Kind, "done", i, "remaining", len(b.IDs)-i)
			if len(errs) == 0 {
				return rep, err
			}
			return rep, errors.Join(append(errs, err)...)
		}

		res, err := action(ctx, id)
		rep.Outcomes = append(rep.Outcomes, Outcome{Index: i, ID: id, Result: res, Err: err})
		if err != nil {
			berr := &BatchError{Index: i, ID: id, Kind: b.Kind, Err: err}
			d.log.Error("Action failed", "action", b.Kind, "id", id, "err", err)
			if !d.opts.ContinueOnError {
				return rep, berr
			}
			errs = append(errs, berr)
			continue
		}
		d.log.Info("Action done", "action", b.Kind, "id", id, "status", res.Status, "note", res.Note, "hash", res.TxHash)
	}
	return rep, errors.Join(errs...)
}

type actionFunc func(ctx context.Context, id domain.TxID) (domain.ActionResult, error)

func (d *Dispatcher) action(b Batch) (actionFunc, error) {
	switch b.Kind {
	case domain.ActionSign:
		return func(ctx context.Context, id domain.TxID) (domain.ActionResult, error) {
			return d.actions.Confirm(ctx, b.Wallet, id, b.Signer)
		}, nil
	case domain.ActionExecute:
		return func(ctx context.Context, id domain.TxID) (domain.ActionResult, error) {
			return d.actions.Execute(ctx, b.Wallet, id, b.Signer)
		}, nil
	case domain.ActionRevoke:
		return func(ctx context.Context, id domain.TxID) (domain.ActionResult, error) {
			return d.actions.Revoke(ctx, b.Wallet, id, b.Signer)
		}, nil
	case domain.ActionCheckStatus:
		return func(ctx context.Context, id domain.TxID) (domain.ActionResult, error) {
			return d.actions.Check(ctx, b.Wallet, id)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, b.Kind)
	}
}
