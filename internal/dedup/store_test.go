package dedup

import (
	"fmt"
	"testing"
)

func TestRecordAndCheck(t *testing.T) {
	s := NewStore(5)
	if s.IsDuplicate("crypto", "fp1") {
		t.Fatalf("empty store must not report duplicates")
	}
	s.Record("crypto", "fp1")
	if !s.IsDuplicate("crypto", "fp1") {
		t.Fatalf("recorded fingerprint not found")
	}
	// Topics are independent.
	if s.IsDuplicate("sports", "fp1") {
		t.Fatalf("fingerprint leaked across topics")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 4; i++ {
		s.Record("crypto", fmt.Sprintf("fp%d", i))
	}
	if got := s.Len("crypto"); got != 3 {
		t.Fatalf("expected capacity 3, got %d", got)
	}
	if s.IsDuplicate("crypto", "fp0") {
		t.Fatalf("oldest entry should have been evicted")
	}
	for i := 1; i < 4; i++ {
		if !s.IsDuplicate("crypto", fmt.Sprintf("fp%d", i)) {
			t.Fatalf("fp%d should still be present", i)
		}
	}
}

func TestRecordSameFingerprintTwice(t *testing.T) {
	s := NewStore(3)
	s.Record("crypto", "fp1")
	s.Record("crypto", "fp1")
	if got := s.Len("crypto"); got != 1 {
		t.Fatalf("re-recording must not grow the set, got %d", got)
	}
}

func TestZeroCapacityFallsBackToDefault(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		s.Record("t", fmt.Sprintf("fp%d", i))
	}
	if got := s.Len("t"); got != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}
