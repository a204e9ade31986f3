package timecontrol

import (
	"math/rand"
	"testing"

	"voyager.com/challenger/internal/errs"
)

func TestClassifyBoundaries(t *testing.T) {
	testCases := []struct {
		base      int
		increment int
		expected  Category
	}{
		{base: 1, expected: Bullet},
		{base: 60, expected: Bullet},
		{base: 178, expected: Bullet},
		{base: 179, expected: Blitz},
		{base: 300, expected: Blitz},
		{base: 478, expected: Blitz},
		{base: 479, expected: Rapid},
		{base: 900, expected: Rapid},
		{base: 1498, expected: Rapid},
		{base: 1499, expected: Classical},
		{base: 2400, expected: Classical},
		// increments count as 40 moves worth of clock
		{base: 60, increment: 2, expected: Bullet},
		{base: 60, increment: 3, expected: Blitz},
		{base: 180, increment: 2, expected: Blitz},
		{base: 300, increment: 5, expected: Rapid},
		{base: 900, increment: 15, expected: Classical},
	}
	for _, tc := range testCases {
		actual := Classify(tc.base, tc.increment)
		if actual != tc.expected {
			t.Errorf("Classify(%d, %d) = %s; expected %s", tc.base, tc.increment, actual, tc.expected)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	order := map[Category]int{Bullet: 0, Blitz: 1, Rapid: 2, Classical: 3}
	prev := Bullet
	for d := 1; d <= 3000; d++ {
		c := Classify(d, 0)
		if order[c] < order[prev] {
			t.Fatalf("Classify(%d, 0) = %s after %s", d, c, prev)
		}
		prev = c
	}
}

func TestTimeControlString(t *testing.T) {
	tc := TimeControl{BaseSeconds: 180, IncrementSeconds: 2}
	if tc.String() != "180+2" {
		t.Errorf("String() = %s; expected 180+2", tc.String())
	}
	if tc.Category() != Blitz {
		t.Errorf("Category() = %s; expected blitz", tc.Category())
	}
}

func TestPick(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	counts := make(map[TimeControl]int)
	for i := 0; i < 800; i++ {
		tc, err := Pick(r, Defaults)
		if err != nil {
			t.Fatalf("Pick returned error [%s]", err)
		}
		counts[tc]++
	}
	if len(counts) != len(Defaults) {
		t.Errorf("Pick produced %d distinct time controls; expected %d", len(counts), len(Defaults))
	}
	for tc := range counts {
		if tc.IncrementSeconds != 0 {
			t.Errorf("default time control %s has an increment", tc)
		}
	}
}

func TestPickEmpty(t *testing.T) {
	_, err := Pick(rand.New(rand.NewSource(1)), nil)
	if !errs.Is(err, errs.Configuration) {
		t.Errorf("Pick(nil) error = %v; expected configuration error", err)
	}
}

func TestPickInvalid(t *testing.T) {
	_, err := Pick(rand.New(rand.NewSource(1)), []TimeControl{{BaseSeconds: 0}})
	if !errs.Is(err, errs.Configuration) {
		t.Errorf("Pick with zero base clock error = %v; expected configuration error", err)
	}
}
