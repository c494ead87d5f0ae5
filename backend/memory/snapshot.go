package memory

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/semvec/semvec/codec"
	"github.com/semvec/semvec/distance"
	"github.com/semvec/semvec/metadata"
)

// Snapshot container layout: magic, format version, codec name, then a
// zstd-compressed codec-encoded body. The codec name makes files
// self-describing so a store configured with a different codec can still
// load them.
var snapshotMagic = [8]byte{'S', 'V', 'S', 'N', 'A', 'P', '0', '1'}

type snapshotBody struct {
	Metric  int             `json:"metric"`
	Entries []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	Vector   []float32         `json:"vector"`
	Metadata metadata.Metadata `json:"metadata"`
}

// SaveToWriter writes the backend contents to w as a compressed snapshot.
// This is a convenience export, not a durability guarantee: concurrent
// writes issued after SaveToWriter returns are not reflected.
func (b *Backend) SaveToWriter(w io.Writer, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	b.mu.Lock()
	body := snapshotBody{
		Metric:  int(b.opts.Metric),
		Entries: make([]snapshotEntry, len(b.entries)),
	}
	for i, e := range b.entries {
		body.Entries[i] = snapshotEntry{
			Vector:   append([]float32(nil), e.vector...),
			Metadata: e.meta.Clone(),
		}
	}
	b.mu.Unlock()

	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return fmt.Errorf("snapshot: write magic: %w", err)
	}
	name := []byte(c.Name())
	if err := binary.Write(w, binary.LittleEndian, uint16(len(name))); err != nil {
		return fmt.Errorf("snapshot: write codec name length: %w", err)
	}
	if _, err := w.Write(name); err != nil {
		return fmt.Errorf("snapshot: write codec name: %w", err)
	}

	encoded, err := c.Marshal(body)
	if err != nil {
		return fmt.Errorf("snapshot: encode body: %w", err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("snapshot: init compressor: %w", err)
	}
	if _, err := zw.Write(encoded); err != nil {
		_ = zw.Close()
		return fmt.Errorf("snapshot: write body: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("snapshot: flush body: %w", err)
	}
	return nil
}

// LoadFromReader creates a backend from a snapshot previously written by
// SaveToWriter. The codec is selected by the name recorded in the file.
func LoadFromReader(r io.Reader) (*Backend, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read magic: %w", err)
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("snapshot: bad magic %q", magic[:])
	}

	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name length: %w", err)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown codec %q", name)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: init decompressor: %w", err)
	}
	defer zr.Close()

	encoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read body: %w", err)
	}

	var body snapshotBody
	if err := c.Unmarshal(encoded, &body); err != nil {
		return nil, fmt.Errorf("snapshot: decode body: %w", err)
	}

	b, err := New(func(o *Options) {
		o.Metric = distance.Metric(body.Metric)
	})
	if err != nil {
		return nil, err
	}

	b.entries = make([]entry, len(body.Entries))
	for i, e := range body.Entries {
		b.entries[i] = entry{vector: e.Vector, meta: e.Metadata}
	}
	return b, nil
}
