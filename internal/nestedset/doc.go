// Package nestedset implements the ordered attribute sets that carry build
// facts between targets.
//
// A Set is immutable and deduplicated. It is composed from its own ("direct")
// elements plus any number of child sets, and the children are referenced,
// never copied: a fact contributed once to a widely shared dependency is
// stored once no matter how many dependents observe it.
//
// # Ordering
//
// Every set carries an Order fixed by the attribute key it was built for:
//
//   - Stable: own elements in insertion order, then each child's flattened
//     sequence in the order the children were supplied. The first occurrence
//     of an element wins.
//   - LinkOrder: the same left-to-right scan and dedup rule. The guarantee
//     that matters for single-pass static linking is that a node's own
//     elements always precede anything contributed by its children, no matter
//     whether the owner added them before or after the children.
//
// Sets of different orders never mix. Composing one into the other is a
// programming error and panics.
//
// # Concurrency
//
// A built Set is read-only. Flattening is computed lazily on first use and
// memoized behind a sync.Once, so any number of goroutines may read the same
// set without further locking. Builders are single-owner and not safe for
// concurrent use.
package nestedset
