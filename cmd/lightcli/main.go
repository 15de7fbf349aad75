// Command lightcli is an example driver over a single SimpleTable: it
// populates a heap file, flushes it, reopens it fresh, and demonstrates
// both a full scan from the start and a keyed range search — the two
// access patterns the engine exists to serve.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/lightsql/lightsql/btree"
	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/disk"
	"github.com/lightsql/lightsql/table"
	"github.com/lightsql/lightsql/tuple"
)

var (
	flagHeapFile = flag.String("heap-file", "lightcli.lsql", "path to the heap file")
	flagPoolSize = flag.Int("pool-size", 64, "buffer pool frame count")
	flagSeed     = flag.Int("seed", 5, "number of sample records to insert")
)

// tableMetaPageID is the meta page id of the table this driver always
// creates fresh: page 0, since populate is the first thing to ever call
// CreatePage against a brand new heap file. populate refuses a heap file
// that already holds pages.
const tableMetaPageID disk.PageID = 0

func main() {
	flag.Parse()

	var searchID string
	var err error
	if searchID, err = populate(*flagHeapFile, *flagPoolSize, *flagSeed); err != nil {
		log.Fatalf("lightcli: populate: %v", err)
	}
	if err := scan(*flagHeapFile, *flagPoolSize, searchID); err != nil {
		log.Fatalf("lightcli: scan: %v", err)
	}
}

// populate creates a fresh SimpleTable of (id, label) records and returns
// the id of the last one inserted, so scan can demonstrate a keyed search.
func populate(path string, poolSize, seed int) (string, error) {
	dm, err := disk.Open(path)
	if err != nil {
		return "", fmt.Errorf("open heap file: %w", err)
	}
	defer dm.Close()

	bufmgr := buffer.NewManager(dm, buffer.NewClockSweepPool(poolSize))

	var tbl table.SimpleTable
	tbl.KeyElemsCount = 1
	if err := tbl.Create(bufmgr); err != nil {
		return "", fmt.Errorf("create table: %w", err)
	}
	if tbl.MetaPageID != tableMetaPageID {
		return "", fmt.Errorf("heap file %s is not empty: table meta page is %d, want %d", path, tbl.MetaPageID, tableMetaPageID)
	}
	log.Printf("lightcli: created table, meta page %d", tbl.MetaPageID)

	var lastID string
	for i := 0; i < seed; i++ {
		lastID = uuid.New().String()
		record := [][]byte{[]byte(lastID), []byte(fmt.Sprintf("user-%d", i))}
		if err := tbl.Insert(bufmgr, record); err != nil {
			return "", fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := bufmgr.Flush(); err != nil {
		return "", fmt.Errorf("flush: %w", err)
	}
	return lastID, nil
}

// scan reopens the heap file and demonstrates both a full scan from the
// start and, if searchID is non-empty, a keyed search for it.
func scan(path string, poolSize int, searchID string) error {
	dm, err := disk.Open(path)
	if err != nil {
		return fmt.Errorf("reopen heap file: %w", err)
	}
	defer dm.Close()

	bufmgr := buffer.NewManager(dm, buffer.NewClockSweepPool(poolSize))

	fmt.Println("-- full scan --")
	full := &btree.SeqScan{TableMetaPageID: tableMetaPageID, Mode: btree.Start()}
	if err := printAll(bufmgr, full); err != nil {
		return err
	}

	if searchID == "" {
		return nil
	}
	fmt.Println("-- keyed search --")
	var key []byte
	key = tuple.Encode([][]byte{[]byte(searchID)}, key)
	seen := false
	keyed := &btree.SeqScan{
		TableMetaPageID: tableMetaPageID,
		Mode:            btree.Key(key),
		While: func(tuple.Pretty) bool {
			first := !seen
			seen = true
			return first
		},
	}
	return printAll(bufmgr, keyed)
}

func printAll(bufmgr *buffer.Manager, plan btree.PlanNode) error {
	exec, err := plan.Start(bufmgr)
	if err != nil {
		return fmt.Errorf("start scan: %w", err)
	}
	for {
		record, ok, err := exec.Next(bufmgr)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if !ok {
			return nil
		}
		fmt.Println(record)
	}
}
