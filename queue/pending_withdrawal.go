package queue

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	sdkerrors "cosmossdk.io/errors"

	"github.com/provlabs/mtvault/types"
)

// PendingWithdrawalIndexes defines the indexes for the pending withdrawal queue.
type PendingWithdrawalIndexes struct {
	ByOwner *indexes.Multi[string, uint64, types.PendingWithdrawal]
}

// IndexesList returns the list of indexes for the pending withdrawal queue.
func (i PendingWithdrawalIndexes) IndexesList() []collections.Index[uint64, types.PendingWithdrawal] {
	return []collections.Index[uint64, types.PendingWithdrawal]{i.ByOwner}
}

// NewPendingWithdrawalIndexes creates a new PendingWithdrawalIndexes object.
func NewPendingWithdrawalIndexes(sb *collections.SchemaBuilder) PendingWithdrawalIndexes {
	return PendingWithdrawalIndexes{
		ByOwner: indexes.NewMulti(
			sb,
			types.PendingWithdrawalsByOwnerIndexPrefix,
			types.PendingWithdrawalsByOwnerIndexName,
			collections.StringKey,
			collections.Uint64Key,
			func(_ uint64, pw types.PendingWithdrawal) (string, error) {
				return pw.Owner, nil
			},
		),
	}
}

// PendingWithdrawalQueue holds the continuation context of every withdrawal
// whose transfer has not been resolved yet.
type PendingWithdrawalQueue struct {
	// IndexedMap is the indexed map of pending withdrawals keyed by withdrawal id.
	IndexedMap *collections.IndexedMap[uint64, types.PendingWithdrawal, PendingWithdrawalIndexes]
	// Sequence is the sequence for generating unique withdrawal IDs.
	Sequence collections.Sequence
}

// NewPendingWithdrawalQueue creates a new PendingWithdrawalQueue.
func NewPendingWithdrawalQueue(builder *collections.SchemaBuilder) *PendingWithdrawalQueue {
	return &PendingWithdrawalQueue{
		IndexedMap: collections.NewIndexedMap(
			builder,
			types.PendingWithdrawalsKeyPrefix,
			types.PendingWithdrawalsName,
			collections.Uint64Key,
			types.PendingWithdrawalValue,
			NewPendingWithdrawalIndexes(builder),
		),
		Sequence: collections.NewSequence(builder, types.PendingWithdrawalSeqPrefix, types.PendingWithdrawalSeqName),
	}
}

// Enqueue stores a pending withdrawal under a newly allocated id.
func (p *PendingWithdrawalQueue) Enqueue(ctx context.Context, pw types.PendingWithdrawal) (uint64, error) {
	if err := pw.Validate(); err != nil {
		return 0, fmt.Errorf("invalid pending withdrawal: %w", err)
	}
	id, err := p.Sequence.Next(ctx)
	if err != nil {
		return 0, err
	}
	return id, p.IndexedMap.Set(ctx, id, pw)
}

// Dequeue removes and returns the pending withdrawal with the given id.
// It fails with ErrPendingWithdrawalNotFound if the id is not pending, so a
// withdrawal can be taken out of the queue at most once.
func (p *PendingWithdrawalQueue) Dequeue(ctx context.Context, id uint64) (types.PendingWithdrawal, error) {
	pw, err := p.Get(ctx, id)
	if err != nil {
		return types.PendingWithdrawal{}, err
	}
	if err := p.IndexedMap.Remove(ctx, id); err != nil {
		return types.PendingWithdrawal{}, err
	}
	return pw, nil
}

// Get returns the pending withdrawal with the given id.
func (p *PendingWithdrawalQueue) Get(ctx context.Context, id uint64) (types.PendingWithdrawal, error) {
	pw, err := p.IndexedMap.Get(ctx, id)
	if errors.Is(err, collections.ErrNotFound) {
		return types.PendingWithdrawal{}, sdkerrors.Wrapf(types.ErrPendingWithdrawalNotFound, "id %d", id)
	}
	return pw, err
}

// Has reports whether the given id is pending.
func (p *PendingWithdrawalQueue) Has(ctx context.Context, id uint64) (bool, error) {
	return p.IndexedMap.Has(ctx, id)
}

// Walk iterates over all entries in id order.
// Iteration stops when the callback returns stop=true or an error.
func (p *PendingWithdrawalQueue) Walk(ctx context.Context, fn func(id uint64, pw types.PendingWithdrawal) (stop bool, err error)) error {
	return p.IndexedMap.Walk(ctx, nil, fn)
}

// WalkByOwner iterates over all entries of a specific owner in id order.
// Iteration stops when the callback returns stop=true or an error.
func (p *PendingWithdrawalQueue) WalkByOwner(ctx context.Context, owner string, fn func(id uint64, pw types.PendingWithdrawal) (stop bool, err error)) error {
	iter, err := p.IndexedMap.Indexes.ByOwner.MatchExact(ctx, owner)
	if err != nil {
		return err
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		id, err := iter.PrimaryKey()
		if err != nil {
			return err
		}
		pw, err := p.IndexedMap.Get(ctx, id)
		if err != nil {
			return err
		}
		if stop, err := fn(id, pw); stop || err != nil {
			return err
		}
	}
	return nil
}

// Import imports the pending withdrawal queue from genesis.
func (p *PendingWithdrawalQueue) Import(ctx context.Context, entries []types.PendingWithdrawalEntry, latestSequenceNumber uint64) error {
	for _, entry := range entries {
		if err := p.IndexedMap.Set(ctx, entry.ID, entry.Withdrawal); err != nil {
			return fmt.Errorf("failed to enqueue pending withdrawal: %w", err)
		}
	}
	if err := p.Sequence.Set(ctx, latestSequenceNumber); err != nil {
		return fmt.Errorf("failed to set latest sequence number for pending withdrawal queue: %w", err)
	}
	return nil
}

// Export exports the pending withdrawal queue to genesis.
func (p *PendingWithdrawalQueue) Export(ctx context.Context) ([]types.PendingWithdrawalEntry, uint64, error) {
	entries := make([]types.PendingWithdrawalEntry, 0)
	err := p.Walk(ctx, func(id uint64, pw types.PendingWithdrawal) (stop bool, err error) {
		entries = append(entries, types.PendingWithdrawalEntry{ID: id, Withdrawal: pw})
		return false, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk pending withdrawal queue: %w", err)
	}

	latestSequenceNumber, err := p.Sequence.Peek(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get latest sequence number for pending withdrawal queue: %w", err)
	}
	return entries, latestSequenceNumber, nil
}
