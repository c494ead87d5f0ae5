// Package semvec provides a pluggable semantic vector store for Go.
//
// A Store wires two injected collaborators behind a validated API: an
// embedding.Provider that turns text into vectors, and a backend.Backend
// that persists (vector, metadata) pairs and answers nearest-neighbor
// queries. The reference backend is an exact in-memory linear scan; remote
// HTTP-backed stores plug in through the same interface.
//
// # Quick Start
//
// Define a record type:
//
//	type Note struct {
//	    NoteID string `json:"note_id"`
//	    Text   string `json:"text"`
//	    Tag    string `json:"tag"`
//	}
//
//	func (n Note) ID() string            { return n.NoteID }
//	func (n Note) EmbeddingText() string { return n.Text }
//	func (n Note) Field(name string) (string, bool) {
//	    switch name {
//	    case "tag":
//	        return n.Tag, true
//	    case "text":
//	        return n.Text, true
//	    default:
//	        return "", false
//	    }
//	}
//
// Create a store and save records:
//
//	ctx := context.Background()
//	be, _ := memory.New()
//	store, _ := semvec.New[Note](semvec.Schema{
//	    Name:             "notes",
//	    VectorDimensions: 128,
//	}, embedding.NewMock(128), be)
//
//	_ = store.Save(ctx, []Note{
//	    {NoteID: "1", Text: "hello world", Tag: "greeting"},
//	})
//
// Query semantically, filter and sort client-side:
//
//	result, _ := store.Fetch(ctx, semvec.FetchRequest{
//	    Query:     "hello",
//	    Limit:     10,
//	    Predicate: predicate.Equal("tag", "greeting"),
//	    Sort:      []predicate.SortDescriptor{predicate.Asc("text")},
//	})
//
// Batch changes with fixed apply ordering (delete, then update, then
// insert):
//
//	_ = store.RunTransaction(ctx, func(tx *semvec.Tx[Note]) error {
//	    tx.Delete("1")
//	    tx.Insert(Note{NoteID: "1", Text: "hello again", Tag: "greeting"})
//	    return nil
//	})
package semvec
