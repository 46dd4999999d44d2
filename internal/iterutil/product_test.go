package iterutil

import "testing"

func collect(n, k int) [][]int {
	var out [][]int
	for tup := range Product(n, k) {
		cp := make([]int, len(tup))
		copy(cp, tup)
		out = append(out, cp)
	}
	return out
}

func TestProductCountAndOrder(t *testing.T) {
	got := collect(3, 2)
	want := [][]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("tuple %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProductZeroElements(t *testing.T) {
	if got := collect(0, 2); len(got) != 0 {
		t.Errorf("Product(0,2) yielded %d tuples, want 0", len(got))
	}
}

func TestProductZeroArity(t *testing.T) {
	got := collect(5, 0)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("Product(n,0) should yield exactly one empty tuple, got %v", got)
	}
}

func TestProductEarlyStop(t *testing.T) {
	count := 0
	for range Product(3, 2) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early break should stop iteration, count = %d", count)
	}
}

func TestEnumerate(t *testing.T) {
	items := []string{"a", "b", "c"}
	var idxs []int
	var vals []string
	for i, v := range Enumerate(items) {
		idxs = append(idxs, i)
		vals = append(vals, v)
	}
	if len(idxs) != 3 || idxs[2] != 2 || vals[2] != "c" {
		t.Errorf("Enumerate produced %v/%v, want indices 0..2 and values a,b,c", idxs, vals)
	}
}
