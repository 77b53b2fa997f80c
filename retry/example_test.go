package retry_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loopwork/await/logger"
	"github.com/loopwork/await/retry"
)

// ExampleDo demonstrates retrying a flaky operation.
func ExampleDo() {
	ctx := logger.WithMuted(context.Background(), true)

	calls := 0
	err := retry.Do(ctx, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}

		return nil
	}, retry.WithBackoff(retry.ConstantBackoff(time.Millisecond)))
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Succeeded after %d calls\n", calls)
	// Output: Succeeded after 3 calls
}

// ExampleDoValue demonstrates retrying an operation that returns a value.
func ExampleDoValue() {
	ctx := logger.WithMuted(context.Background(), true)

	result, err := retry.DoValue(ctx, func(ctx context.Context) (string, error) {
		return "payload", nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(result)
	// Output: payload
}

// ExampleAbort demonstrates marking an error as non-retryable.
func ExampleAbort() {
	ctx := logger.WithMuted(context.Background(), true)

	calls := 0
	err := retry.Do(ctx, func(ctx context.Context) error {
		calls++

		// Validation failures will never succeed on retry.
		return retry.Abort(errors.New("malformed request"))
	}, retry.WithBackoff(retry.ConstantBackoff(time.Millisecond)))

	fmt.Printf("calls=%d err=%v\n", calls, err)
	// Output: calls=1 err=malformed request
}
