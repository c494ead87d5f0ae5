package semvec_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	semvec "github.com/semvec/semvec"
)

func TestTransactionDeleteThenInsertSameID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Save(ctx, []Note{{NoteID: "1", Text: "one", Tag: "old"}}))

	err := f.store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
		tx.Delete("1")
		tx.Insert(Note{NoteID: "1", Text: "one", Tag: "new"})
		return nil
	})
	require.NoError(t, err)

	// Deletes apply before inserts, so the record survives with the
	// inserted content.
	assert.Equal(t, 1, f.count(t))

	result, err := f.store.Fetch(ctx, semvec.FetchRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "new", result.Records[0].Tag)
}

func TestTransactionPhaseOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Save(ctx, []Note{
		{NoteID: "1", Text: "one"},
		{NoteID: "2", Text: "two"},
	}))
	f.backend.Upserts = nil
	f.backend.Deletes = nil

	err := f.store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
		tx.Insert(Note{NoteID: "3", Text: "three"})
		tx.Update(Note{NoteID: "2", Text: "two", Tag: "touched"})
		tx.Delete("1")
		return nil
	})
	require.NoError(t, err)

	// One delete batch, then updates, then inserts, regardless of the
	// order the intents were declared in.
	require.Len(t, f.backend.Deletes, 1)
	assert.Equal(t, []string{"1"}, f.backend.Deletes[0])
	require.Len(t, f.backend.Upserts, 2)
	assert.Equal(t, "2", f.backend.Upserts[0][0].Metadata.ID())
	assert.Equal(t, "3", f.backend.Upserts[1][0].Metadata.ID())

	assert.Equal(t, 2, f.count(t))
}

func TestTransactionBodyErrorAppliesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	boom := errors.New("business rule violated")
	err := f.store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
		tx.Insert(Note{NoteID: "1", Text: "one"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Zero(t, f.count(t))
	assert.Empty(t, f.backend.Upserts)
}

func TestTransactionDeleteFailureSkipsLaterPhases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.backend.DeleteErr = errors.New("backend down")

	err := f.store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
		tx.Delete("1")
		tx.Insert(Note{NoteID: "2", Text: "two"})
		return nil
	})
	require.ErrorContains(t, err, "backend down")

	assert.Empty(t, f.backend.Upserts)
	assert.Zero(t, f.count(t))
}

func TestTransactionValidationFailureStopsApply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
		tx.Update(Note{NoteID: "", Text: "one"})
		tx.Insert(Note{NoteID: "2", Text: "two"})
		return nil
	})

	var missing *semvec.ErrMissingID
	require.ErrorAs(t, err, &missing)
	assert.Zero(t, f.count(t))
}

func TestTransactionEmptyBody(t *testing.T) {
	f := newFixture(t)

	err := f.store.RunTransaction(context.Background(), func(tx *semvec.Tx[Note]) error {
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, f.backend.Upserts)
	assert.Empty(t, f.backend.Deletes)
}

func TestTransactionMetrics(t *testing.T) {
	mc := &semvec.BasicMetricsCollector{}
	f := newFixture(t, semvec.WithMetricsCollector(mc))

	require.NoError(t, f.store.RunTransaction(context.Background(), func(tx *semvec.Tx[Note]) error {
		tx.Insert(Note{NoteID: "1", Text: "one"})
		return nil
	}))
	_ = f.store.RunTransaction(context.Background(), func(tx *semvec.Tx[Note]) error {
		return errors.New("abort")
	})

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.TransactionCount)
	assert.Equal(t, int64(1), stats.TransactionFails)
}
