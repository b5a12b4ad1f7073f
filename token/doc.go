// Package token provides token-count estimation and prompt budgets.
//
// Estimation is a deliberate black box: the pipeline only needs a cheap,
// roughly additive heuristic to decide when a prompt component must be
// reduced. Callers with access to a real tokenizer can supply their own
// Estimator.
package token
