package bulk

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"virtualab_backend/internals/features/audit/dto"
)

type captureLogger struct {
	mu        sync.Mutex
	summaries []dto.BulkSummaryPayload
}

func (c *captureLogger) LogBulkOperation(_ context.Context, _ uuid.UUID, p dto.BulkSummaryPayload) {
	c.mu.Lock()
	c.summaries = append(c.summaries, p)
	c.mu.Unlock()
}

func TestProcessAccumulatesFailuresWithoutAborting(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}
	audit := &captureLogger{}

	res := Process(context.Background(), items, func(_ context.Context, item int) error {
		if item == 3 || item == 7 {
			return fmt.Errorf("item %d broke", item)
		}
		return nil
	}, Options{
		BatchSize:     4,
		UserID:        uuid.New(),
		OperationType: "test_op",
		Audit:         audit,
	})

	if res.SuccessCount != 8 {
		t.Errorf("SuccessCount = %d, want 8", res.SuccessCount)
	}
	if res.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", res.ErrorCount)
	}
	if len(res.Errors) != 2 || res.Errors[0].Index != 3 || res.Errors[1].Index != 7 {
		t.Fatalf("Errors = %+v, want indexes [3 7]", res.Errors)
	}

	if len(audit.summaries) != 1 {
		t.Fatalf("summaries = %d, want exactly 1", len(audit.summaries))
	}
	s := audit.summaries[0]
	if s.TotalItems != 10 || s.SuccessCount != 8 || s.ErrorCount != 2 {
		t.Errorf("summary counts = %+v", s)
	}
	if len(s.Errors) != 2 || s.Errors[0].Index != 3 || s.Errors[1].Index != 7 {
		t.Errorf("summary errors = %+v, want the two failures by index", s.Errors)
	}
}

func TestProcessBatchOrdering(t *testing.T) {
	// with BatchSize 2, progress must report settled prefixes: 2, 4, 5
	var progress []int
	items := []string{"a", "b", "c", "d", "e"}

	Process(context.Background(), items, func(_ context.Context, _ string) error {
		return nil
	}, Options{
		BatchSize: 2,
		OnProgress: func(done, total int) {
			progress = append(progress, done)
			if total != 5 {
				t.Errorf("total = %d, want 5", total)
			}
		},
	})

	want := []int{2, 4, 5}
	if len(progress) != len(want) {
		t.Fatalf("progress = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Fatalf("progress = %v, want %v", progress, want)
		}
	}
}

func TestProcessCapsRecordedErrors(t *testing.T) {
	items := make([]int, 25)
	audit := &captureLogger{}

	res := Process(context.Background(), items, func(_ context.Context, _ int) error {
		return fmt.Errorf("always fails")
	}, Options{
		UserID:        uuid.New(),
		OperationType: "all_fail",
		Audit:         audit,
	})

	if res.ErrorCount != 25 {
		t.Errorf("ErrorCount = %d, want 25", res.ErrorCount)
	}
	if len(res.Errors) != 25 {
		t.Errorf("result keeps every error, got %d", len(res.Errors))
	}
	if len(audit.summaries[0].Errors) != 10 {
		t.Errorf("summary errors = %d, want cap of 10", len(audit.summaries[0].Errors))
	}
}

func TestProcessEmptyItems(t *testing.T) {
	audit := &captureLogger{}
	res := Process(context.Background(), []int{}, func(_ context.Context, _ int) error {
		t.Fatal("processor must not run")
		return nil
	}, Options{Audit: audit, OperationType: "noop"})

	if res.SuccessCount != 0 || res.ErrorCount != 0 {
		t.Errorf("result = %+v, want zeroes", res)
	}
	if len(audit.summaries) != 1 {
		t.Errorf("even empty runs write one summary, got %d", len(audit.summaries))
	}
}

func TestProcessNilAuditSkipsSummary(t *testing.T) {
	res := Process(context.Background(), []int{1, 2}, func(_ context.Context, _ int) error {
		return nil
	}, Options{})
	if res.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", res.SuccessCount)
	}
}
