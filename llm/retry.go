package llm

import (
	"context"
)

// CeilingCap bounds how far a truncation retry may raise MaxTokens.
const CeilingCap = 6000

// ceilingStep is the minimum raise applied on a truncation retry.
const ceilingStep = 200

// BumpCeiling returns the raised completion ceiling for a truncation
// retry: half again the current value, at least ceilingStep more, and
// never above CeilingCap.
func BumpCeiling(ceiling int) int {
	next := int(float64(ceiling) * 1.5)
	if ceiling+ceilingStep > next {
		next = ceiling + ceilingStep
	}
	if next > CeilingCap {
		next = CeilingCap
	}
	return next
}

// CompleteRetrying issues req and, when the model produced nothing
// because it hit the token ceiling, retries once with a raised ceiling.
// The returned result may still be empty; each call site decides its
// own fallback.
func CompleteRetrying(ctx context.Context, c Client, req Request) (*Result, error) {
	res, err := c.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.Empty() || res.StopReason != StopLength {
		return res, nil
	}

	req.MaxTokens = BumpCeiling(req.MaxTokens)
	return c.Complete(ctx, req)
}
