// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package materialize

import (
	"fmt"
)

// SkipReason classifies why a node or field was dropped.
type SkipReason int

const (
	// SkipUnknownType marks a node whose hash is absent from the type list
	// or resolves to a type with no registered record kind.
	SkipUnknownType SkipReason = iota
	// SkipMalformedField marks a field whose value failed coercion.
	SkipMalformedField
)

// String returns the log name of the reason.
func (reason SkipReason) String() string {
	switch reason {
	case SkipUnknownType:
		return "unknown_type"
	case SkipMalformedField:
		return "malformed_field"
	}
	return fmt.Sprintf("skip_reason(%d)", int(reason))
}

// SkipEntry records one recoverable problem found during materialization.
// Entries are data, not control flow; the walk never aborts over one.
type SkipEntry struct {
	Reason SkipReason
	// TypeHash is set for unknown-type entries.
	TypeHash uint64
	// Path locates the problem inside the owning tree, e.g.
	// "m_spellTemplate.m_effects[2].m_healModifier".
	Path string
	// Detail is a human-readable description of what went wrong.
	Detail string
	// RawSnapshot is the serialized offending node, for offline inspection.
	RawSnapshot string
}

// Ledger accumulates skip entries for one traversal. It is append-only and
// single-writer; concurrent workers each own their own ledger and
// concatenate the drained shards afterwards.
type Ledger struct {
	entries []SkipEntry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Record appends an entry.
func (ledger *Ledger) Record(entry SkipEntry) {
	ledger.entries = append(ledger.entries, entry)
}

// Len returns the number of recorded entries.
func (ledger *Ledger) Len() int { return len(ledger.entries) }

// Drain returns the accumulated entries in emission order and resets the
// ledger.
func (ledger *Ledger) Drain() []SkipEntry {
	entries := ledger.entries
	ledger.entries = nil
	return entries
}
