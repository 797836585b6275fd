// Copyright 2026 Tessier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), nil, func() error {
			attempts++
			return nil
		}, 3, 10*time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), nil, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, 10*time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error when all attempts fail", func(t *testing.T) {
		wantErr := errors.New("persistent")
		attempts := 0
		err := RetryWithBackoff(context.Background(), nil, func() error {
			attempts++
			return wantErr
		}, 3, 10*time.Millisecond)

		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := RetryWithBackoff(ctx, nil, func() error {
			attempts++
			cancel()
			return errors.New("transient")
		}, 5, 10*time.Millisecond)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when the context deadline passes", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
		defer cancel()

		err := RetryWithBackoff(ctx, nil, func() error {
			return errors.New("transient")
		}, 10, 10*time.Millisecond)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("doubles the delay between attempts", func(t *testing.T) {
		var stamps []time.Time
		_ = RetryWithBackoff(context.Background(), nil, func() error {
			stamps = append(stamps, time.Now())
			return errors.New("transient")
		}, 3, 20*time.Millisecond)

		require.Len(t, stamps, 3)
		first := stamps[1].Sub(stamps[0])
		second := stamps[2].Sub(stamps[1])
		assert.GreaterOrEqual(t, first, 20*time.Millisecond)
		assert.GreaterOrEqual(t, second, 40*time.Millisecond)
	})

	t.Run("rejects non-positive attempt counts", func(t *testing.T) {
		for _, maxAttempts := range []int{0, -1} {
			attempts := 0
			err := RetryWithBackoff(context.Background(), nil, func() error {
				attempts++
				return nil
			}, maxAttempts, 10*time.Millisecond)

			require.ErrorIs(t, err, ErrInvalidMaxAttempts)
			assert.Zero(t, attempts)
		}
	})
}
