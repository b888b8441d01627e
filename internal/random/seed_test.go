package random

import "testing"

func TestNewSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 16; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seed == 0 {
			t.Fatal("expected non-zero seed")
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct seeds")
	}
}
