package semvec

// Tx accumulates insert, update, and delete intents during one
// RunTransaction closure. It is an ordered log of intents, not a unit of
// isolation: nothing is applied until the closure returns successfully, and
// the state is discarded afterwards.
type Tx[T Record] struct {
	inserts []T
	updates []T
	deletes []string
}

// Insert schedules records to be inserted when the transaction applies.
func (tx *Tx[T]) Insert(records ...T) {
	tx.inserts = append(tx.inserts, records...)
}

// Update schedules records to be updated when the transaction applies.
// At the backend level updates are upserts, identical to inserts; the split
// exists for apply ordering (see Store.RunTransaction).
func (tx *Tx[T]) Update(records ...T) {
	tx.updates = append(tx.updates, records...)
}

// Delete schedules ids for deletion when the transaction applies.
func (tx *Tx[T]) Delete(ids ...string) {
	tx.deletes = append(tx.deletes, ids...)
}

// DeleteRecords schedules records for deletion by their identity.
func (tx *Tx[T]) DeleteRecords(records ...T) {
	for _, r := range records {
		tx.deletes = append(tx.deletes, r.ID())
	}
}
