//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package trunc

import "testing"

// TestClassify checks Classify against TruncPrTupleWithGap's actual
// test (width - k >= kappa), not the shift amount m: a value whose
// declared bit-length bound leaves little ring headroom is small-gap
// even when its shift amount is tiny, and a value with a small
// declared bound inside a much wider ring is big-gap even when its
// shift amount is large.
func TestClassify(t *testing.T) {
	const kappa = 40
	tests := []struct {
		name        string
		width, k, m int
		want        Gap
	}{
		{"full-width value, tiny shift", 64, 64, 10, SmallGap},
		{"narrow declared bound, same shift", 64, 20, 10, BigGap},
		{"full-width value, large shift", 64, 64, 61, SmallGap},
		{"exactly at the boundary", 64, 24, 5, BigGap},
		{"one bit short of the boundary", 64, 25, 5, SmallGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.width, tt.k, kappa); got != tt.want {
				t.Fatalf("Classify(%d, %d, %d) = %s, want %s", tt.width, tt.k, kappa, got, tt.want)
			}
			tup := Tuple{Width: tt.width, K: tt.k, M: tt.m, Kappa: kappa}
			if got := tup.Gap(); got != tt.want {
				t.Fatalf("Tuple.Gap() = %s, want %s", got, tt.want)
			}
		})
	}
}
