// Package table implements the thin tuple-aware layer over a B+tree: a
// SimpleTable splits each inserted record into a memcmp-encoded key and
// value by field count, and the general Table adds secondary unique
// indexes as independent B+trees.
package table

import (
	"fmt"

	"github.com/lightsql/lightsql/btree"
	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/disk"
	"github.com/lightsql/lightsql/normalize"
	"github.com/lightsql/lightsql/tuple"
)

// SimpleTable stores records as one primary-key B+tree: the first
// KeyElemsCount fields become the key, the rest become the value.
//
// NormalizeKeys, if set, runs every key field through normalize.Bytes
// before encoding, so that Unicode strings differing only in composition
// (e.g. "é" as one code point vs. "e" plus a combining acute) compare
// equal under memcmp ordering. Off by default: memcmp ordering is
// byte-exact unless a caller opts in.
type SimpleTable struct {
	MetaPageID    disk.PageID
	KeyElemsCount int
	NormalizeKeys bool
}

func (t *SimpleTable) encodeKey(fields [][]byte) []byte {
	if !t.NormalizeKeys {
		return tuple.Encode(fields, nil)
	}
	normalized := make([][]byte, len(fields))
	for i, f := range fields {
		normalized[i] = normalize.Bytes(f)
	}
	return tuple.Encode(normalized, nil)
}

// Create allocates a fresh B+tree and records its meta page id.
func (t *SimpleTable) Create(bufmgr *buffer.Manager) error {
	bt, err := btree.Create(bufmgr)
	if err != nil {
		return fmt.Errorf("table: create: %w", err)
	}
	t.MetaPageID = bt.MetaPageID
	return nil
}

// Insert tuple-encodes record's leading KeyElemsCount fields as the key
// and the remainder as the value, then inserts them into the B+tree.
func (t *SimpleTable) Insert(bufmgr *buffer.Manager, record [][]byte) error {
	if len(record) < t.KeyElemsCount {
		return fmt.Errorf("table: insert: record has %d fields, need at least %d key fields", len(record), t.KeyElemsCount)
	}
	bt := btree.New(t.MetaPageID)
	key := t.encodeKey(record[:t.KeyElemsCount])
	value := tuple.Encode(record[t.KeyElemsCount:], nil)
	if err := bt.Insert(bufmgr, key, value); err != nil {
		return fmt.Errorf("table: insert: %w", err)
	}
	return nil
}

// UniqueIndex is a secondary index: an independent B+tree whose key is the
// tuple-encoding of the fields named by Skey (positions into the primary
// record). Maintaining a UniqueIndex's contents as the owning Table is
// written to is not implemented — see the doc comment on Table.
type UniqueIndex struct {
	MetaPageID disk.PageID
	Skey       []int
}

// Table is the general form of SimpleTable: a primary key B+tree plus zero
// or more secondary UniqueIndex B+trees.
//
// Secondary index maintenance — keeping each UniqueIndex's entries in sync
// as records are inserted into, updated in, or removed from the primary
// tree — is an open item: Table only stores the index definitions here,
// it does not yet write to them on Insert. A caller wanting secondary
// lookups today must maintain them itself by inserting into each
// UniqueIndex's btree.BTree directly.
type Table struct {
	MetaPageID    disk.PageID
	KeyElemsCount int
	NormalizeKeys bool
	UniqueIndices []UniqueIndex
}

// Create allocates the primary B+tree and every declared secondary index's
// B+tree, recording their meta page ids.
func (t *Table) Create(bufmgr *buffer.Manager) error {
	bt, err := btree.Create(bufmgr)
	if err != nil {
		return fmt.Errorf("table: create primary tree: %w", err)
	}
	t.MetaPageID = bt.MetaPageID

	for i := range t.UniqueIndices {
		ibt, err := btree.Create(bufmgr)
		if err != nil {
			return fmt.Errorf("table: create unique index %d: %w", i, err)
		}
		t.UniqueIndices[i].MetaPageID = ibt.MetaPageID
	}
	return nil
}

// Insert writes record into the primary tree only; see Table's doc comment
// regarding secondary index maintenance.
func (t *Table) Insert(bufmgr *buffer.Manager, record [][]byte) error {
	primary := SimpleTable{MetaPageID: t.MetaPageID, KeyElemsCount: t.KeyElemsCount, NormalizeKeys: t.NormalizeKeys}
	return primary.Insert(bufmgr, record)
}
