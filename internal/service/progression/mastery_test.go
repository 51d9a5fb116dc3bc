package progression

import (
	"math/rand/v2"
	"testing"
)

func TestUpdateMastery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		correct bool
		want    int
	}{
		{"correct from zero", 0, true, 20},
		{"correct near cap", 90, true, 100},
		{"correct at cap", 100, true, 100},
		{"incorrect mid", 50, false, 35},
		{"incorrect near floor", 10, false, 0},
		{"incorrect at floor", 0, false, 0},
		{"out of range high is clamped", 140, false, 85},
		{"out of range low is clamped", -20, true, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := UpdateMastery(tt.current, tt.correct, 20, 15); got != tt.want {
				t.Errorf("UpdateMastery(%d, %v) = %d, want %d", tt.current, tt.correct, got, tt.want)
			}
		})
	}
}

func TestUpdateMastery_SequencesStayInBounds(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for start := 0; start <= 100; start += 5 {
		m := start
		for i := 0; i < 200; i++ {
			m = UpdateMastery(m, r.IntN(2) == 0, 20, 15)
			if m < 0 || m > 100 {
				t.Fatalf("mastery %d out of [0,100] after %d reviews from %d", m, i+1, start)
			}
		}
	}
}
