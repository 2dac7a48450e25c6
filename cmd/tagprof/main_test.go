package main

import "testing"

func TestRunChurnsMembership(t *testing.T) {
	if seen := run(1, 6, 60); seen == 0 {
		t.Error("expected queries to see members during churn")
	}
}

func BenchmarkTagChurn(b *testing.B) {
	for i := 0; i < b.N; i++ {
		run(1, 10, 500)
	}
}
