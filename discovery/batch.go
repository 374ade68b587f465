package discovery

import "context"

// ItemResult is the outcome of one operation inside a batch.
type ItemResult[T any] struct {
	Index int
	Value T
	Err   error
}

// RunBatch executes n independent operations with per-item isolation: an
// error in one item never aborts the rest. Results come back in
// submission order together with an error tally. Context cancellation
// stops scheduling further items but keeps the results gathered so far.
func RunBatch[T any](ctx context.Context, n int, op func(ctx context.Context, i int) (T, error)) ([]ItemResult[T], int) {
	results := make([]ItemResult[T], 0, n)
	failed := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		v, err := op(ctx, i)
		if err != nil {
			failed++
		}
		results = append(results, ItemResult[T]{Index: i, Value: v, Err: err})
	}
	return results, failed
}
