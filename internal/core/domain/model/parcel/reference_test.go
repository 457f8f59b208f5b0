package parcel_test

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceCode(t *testing.T) {
	formatPattern := regexp.MustCompile(`^NEWDAY-[0-9A-Z]+-[0-9A-Z]{4}$`)

	t.Run("matches the documented format", func(t *testing.T) {
		code := parcel.GenerateReferenceCode()

		assert.Regexp(t, formatPattern, code)
		require.NoError(t, parcel.ValidateReferenceCode(code))
	})

	t.Run("timestamp component is non-decreasing", func(t *testing.T) {
		extract := func(code string) string {
			parts := strings.Split(code, "-")
			require.Len(t, parts, 3)
			return parts[1]
		}

		prev := extract(parcel.GenerateReferenceCode())
		for range 50 {
			cur := extract(parcel.GenerateReferenceCode())
			// base36 of unix millis: longer means larger, same length compares lexically
			if len(cur) == len(prev) {
				assert.GreaterOrEqual(t, cur, prev)
			} else {
				assert.Greater(t, len(cur), len(prev))
			}
			prev = cur
		}
	})

	t.Run("safe and well-formed under concurrent callers", func(t *testing.T) {
		// Uniqueness is probabilistic and enforced at persistence, not here;
		// this only checks the generator races cleanly and never emits a
		// malformed code.
		const workers = 8
		const perWorker = 200

		var mu sync.Mutex
		all := make([]string, 0, workers*perWorker)

		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes := make([]string, 0, perWorker)
				for range perWorker {
					codes = append(codes, parcel.GenerateReferenceCode())
				}
				mu.Lock()
				defer mu.Unlock()
				all = append(all, codes...)
			}()
		}
		wg.Wait()

		require.Len(t, all, workers*perWorker)
		for _, code := range all {
			assert.Regexp(t, formatPattern, code)
		}
	})

	t.Run("unique across distinct timestamp components", func(t *testing.T) {
		timestamp := func(code string) string {
			parts := strings.Split(code, "-")
			require.Len(t, parts, 3)
			return parts[1]
		}

		seen := make(map[string]bool)
		prev := ""
		for len(seen) < 20 {
			code := parcel.GenerateReferenceCode()
			// codes from the same millisecond may collide by design;
			// across different timestamps they never can
			if ts := timestamp(code); ts != prev {
				assert.False(t, seen[code], "duplicate reference code %s", code)
				seen[code] = true
				prev = ts
			}
		}
	})
}

func TestValidateReferenceCode(t *testing.T) {
	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{
			"",
			"NEWDAY",
			"NEWDAY-MBXK2T1A",
			"NEWDAY-MBXK2T1A-7QH",
			"NEWDAY-MBXK2T1A-7QHVX",
			"newday-MBXK2T1A-7QHV",
			"OTHER-MBXK2T1A-7QHV",
			"NEWDAY-mbxk2t1a-7qhv",
		} {
			require.Error(t, parcel.ValidateReferenceCode(code), "expected error for %q", code)
		}
	})

	t.Run("accepts well-formed codes", func(t *testing.T) {
		require.NoError(t, parcel.ValidateReferenceCode("NEWDAY-MBXK2T1A-7QHV"))
	})
}
