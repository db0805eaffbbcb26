// Package bundle implements the per-target attribute bundle and the builder
// that assembles it from a target's own facts and its dependencies' bundles.
//
// # Tiers
//
// Every fact lives in one of three tiers, which decide how far up the
// dependency graph it travels:
//
//   - Propagated: visible here and handed on to every ancestor that merges
//     with MergePropagating.
//   - DirectOnly: visible here and in the immediate parent, where it becomes
//     Sealed regardless of how the parent merges.
//   - Sealed: visible here only.
//
// The horizon rules are encoded once, in mergeTable. Builder operations
// consult the table instead of hard-coding tier moves.
//
// # Reading
//
// Get concatenates the tiers in the order Propagated, DirectOnly, Sealed.
// The LinkOrder rule that own elements precede children holds within each
// tier only: an own DirectOnly or Sealed element is listed after every
// Propagated element, including those merged in from dependencies.
//
// # Lifecycle
//
// A Builder is owned by exactly one analysis step and is not safe for
// concurrent use. Freeze turns it into a Bundle, which is immutable: any
// number of goroutines may read a Bundle, and bundles of shared dependencies
// are referenced by their dependents rather than copied.
package bundle
