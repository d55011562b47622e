package xl

import "testing"

func TestSharedStringsIntern(t *testing.T) {
	sst := NewSharedStrings()

	input := []string{"x", "y", "x", "", "z", "y", ""}
	expected := []int{0, 1, 0, 2, 3, 1, 2}
	for i, s := range input {
		if got := sst.Intern(s); got != expected[i] {
			t.Errorf("Intern(%q) = %d, expected %d", s, got, expected[i])
		}
	}

	if sst.Len() != 4 {
		t.Errorf("Expected 4 unique strings, got %d", sst.Len())
	}
	want := []string{"x", "y", "", "z"}
	got := sst.Strings()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strings()[%d] = %q, expected %q", i, got[i], want[i])
		}
	}

	if id, ok := sst.Lookup("z"); !ok || id != 3 {
		t.Errorf("Lookup(z) = %d, %v", id, ok)
	}
	if _, ok := sst.Lookup("missing"); ok {
		t.Error("Lookup should not find a string that was never interned")
	}
	if sst.Len() != 4 {
		t.Error("Lookup must not add entries")
	}
}

func TestSharedStringsDense(t *testing.T) {
	sst := NewSharedStrings()
	for i := 0; i < 1000; i++ {
		s := string(rune('a'+i%26)) + string(rune('a'+i/26))
		id := sst.Intern(s)
		if id != i {
			t.Fatalf("Intern(%q) = %d, expected %d", s, id, i)
		}
	}
}
