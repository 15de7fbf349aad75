package btree

import (
	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/disk"
	"github.com/lightsql/lightsql/tuple"
)

// PlanNode and Executor are a minimal query-plan-lite layer sitting above
// the raw btree iterator: enough to express "scan a table, optionally
// filtering its decoded records" without pulling in a query language.
type PlanNode interface {
	Start(bufmgr *buffer.Manager) (Executor, error)
}

// Executor pulls decoded tuples one at a time from a started PlanNode.
type Executor interface {
	Next(bufmgr *buffer.Manager) (tuple.Pretty, bool, error)
}

// SeqScan walks a table's underlying B+tree from Mode, decoding each
// (key, value) pair into one flat record, stopping early the moment While
// reports false for a record. A nil While never stops early.
type SeqScan struct {
	TableMetaPageID disk.PageID
	Mode            SearchMode
	While           func(tuple.Pretty) bool
}

type seqScanExecutor struct {
	it    *Iterator
	while func(tuple.Pretty) bool
	done  bool
}

func (s *SeqScan) Start(bufmgr *buffer.Manager) (Executor, error) {
	it, err := New(s.TableMetaPageID).Search(bufmgr, s.Mode)
	if err != nil {
		return nil, err
	}
	while := s.While
	if while == nil {
		while = func(tuple.Pretty) bool { return true }
	}
	return &seqScanExecutor{it: it, while: while}, nil
}

func (e *seqScanExecutor) Next(bufmgr *buffer.Manager) (tuple.Pretty, bool, error) {
	if e.done {
		return nil, false, nil
	}
	pair, ok, err := e.it.Next()
	if err != nil || !ok {
		e.done = true
		return nil, false, err
	}
	var record tuple.Pretty
	record = append(record, tuple.Decode(pair.Key)...)
	record = append(record, tuple.Decode(pair.Value)...)
	if !e.while(record) {
		e.done = true
		return nil, false, nil
	}
	return record, true, nil
}

// Filter wraps another PlanNode, yielding only the records Cond accepts.
// A nil Cond accepts everything.
type Filter struct {
	Cond  func(tuple.Pretty) bool
	Inner PlanNode
}

type filterExecutor struct {
	inner Executor
	cond  func(tuple.Pretty) bool
}

func (f *Filter) Start(bufmgr *buffer.Manager) (Executor, error) {
	inner, err := f.Inner.Start(bufmgr)
	if err != nil {
		return nil, err
	}
	cond := f.Cond
	if cond == nil {
		cond = func(tuple.Pretty) bool { return true }
	}
	return &filterExecutor{inner: inner, cond: cond}, nil
}

func (e *filterExecutor) Next(bufmgr *buffer.Manager) (tuple.Pretty, bool, error) {
	for {
		record, ok, err := e.inner.Next(bufmgr)
		if err != nil || !ok {
			return nil, false, err
		}
		if e.cond(record) {
			return record, true, nil
		}
	}
}
