// Package document maintains the editable, queryable element model over
// a page-structured [model.Context].
//
// A [Document] wraps a context and derives two indexes from it: the
// chain table (head key to combined run text) and the membership table
// (element key to its chain's head key). Chains are logical paragraphs
// reconstructed from the per-element continuation markers; they may span
// fragment and page boundaries.
//
// The model is single-writer. Every mutating operation (flag toggles,
// split, merge, move, margin changes) finishes by rebuilding the derived
// indexes from scratch; nothing is patched incrementally, so the indexes
// always reflect the current flags and text.
//
// All element lookups go through a key-to-position side index that is
// rebuilt on structural mutation, so lookups stay cheap without changing
// observable behavior.
package document
