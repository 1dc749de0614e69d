// Package bulk runs many independent item operations in throttled
// batches: items inside a batch run concurrently, batch N+1 only starts
// once batch N has fully settled. Item failures are accumulated, never
// fatal.
package bulk

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"virtualab_backend/internals/features/audit/dto"
)

const DefaultBatchSize = 10

// maxRecordedErrors caps how many item errors make it into the audit
// summary verbatim.
const maxRecordedErrors = 10

// SummaryLogger is the slice of the audit logger bulk needs.
type SummaryLogger interface {
	LogBulkOperation(ctx context.Context, userID uuid.UUID, p dto.BulkSummaryPayload)
}

type Options struct {
	BatchSize     int
	OnProgress    func(done, total int)
	UserID        uuid.UUID
	OperationType string
	Audit         SummaryLogger // nil disables the summary event
}

type Result struct {
	SuccessCount int
	ErrorCount   int
	Errors       []dto.BulkItemError
}

// Process applies processor to every item and returns the accumulated
// outcome. One summary audit event is written at the end, carrying up to
// the first ten errors verbatim.
func Process[T any](ctx context.Context, items []T, processor func(context.Context, T) error, opts Options) Result {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var (
		mu     sync.Mutex
		result Result
	)

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int, item T) {
				defer wg.Done()
				err := processor(ctx, item)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.ErrorCount++
					result.Errors = append(result.Errors, dto.BulkItemError{
						Index:   idx,
						Message: err.Error(),
					})
				} else {
					result.SuccessCount++
				}
			}(i, items[i])
		}
		wg.Wait()

		if opts.OnProgress != nil {
			opts.OnProgress(end, len(items))
		}
	}

	// errors are appended concurrently; restore item order
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Index < result.Errors[j].Index
	})

	if opts.Audit != nil {
		recorded := result.Errors
		if len(recorded) > maxRecordedErrors {
			recorded = recorded[:maxRecordedErrors]
		}
		opts.Audit.LogBulkOperation(ctx, opts.UserID, dto.BulkSummaryPayload{
			OperationType: opts.OperationType,
			TotalItems:    len(items),
			SuccessCount:  result.SuccessCount,
			ErrorCount:    result.ErrorCount,
			Errors:        recorded,
		})
	}

	return result
}
