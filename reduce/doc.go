// Package reduce shrinks chunked conversations into budget-sized context.
//
// Core types:
//   - Summarizer: one summary per chunk, produced strictly in order so
//     each prompt can carry the summary before it
//   - Condenser: joins segment summaries into a single context block
//     and, when the rendered prompt overflows the budget, merges them
//     down with one lossy completion call
//
// The condenser is deliberately two-level: the cheap concatenation, one
// paid merge, then ErrBudgetExceeded. It never recurses.
package reduce
