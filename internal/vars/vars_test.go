package vars

import "testing"

func TestInternNamedIsIdempotent(t *testing.T) {
	t.Parallel()
	tbl := New()
	a := tbl.InternNamed("A")
	b := tbl.InternNamed("B")
	a2 := tbl.InternNamed("A")
	if a != a2 {
		t.Fatalf("InternNamed(%q) = %d, want %d (same as first call)", "A", a2, a)
	}
	if a == b {
		t.Fatalf("InternNamed(\"A\") and InternNamed(\"B\") collided on id %d", a)
	}
}

func TestNewAuxIsMonotoneAndDistinct(t *testing.T) {
	t.Parallel()
	tbl := New()
	ids := make(map[ID]bool)
	for i := 0; i < 5; i++ {
		id := tbl.NewAux()
		if ids[id] {
			t.Fatalf("NewAux produced duplicate id %d", id)
		}
		ids[id] = true
		v, ok := tbl.Lookup(id)
		if !ok || v.Kind != Aux {
			t.Fatalf("Lookup(%d) = %+v, %v; want an Aux variable", id, v, ok)
		}
	}
}

func TestLookupRejectsOutOfRangeAndReservedID(t *testing.T) {
	t.Parallel()
	tbl := New()
	tbl.InternNamed("A")
	if _, ok := tbl.Lookup(0); ok {
		t.Fatalf("Lookup(0) should reject the reserved sentinel id")
	}
	if _, ok := tbl.Lookup(99); ok {
		t.Fatalf("Lookup(99) should reject an id never assigned")
	}
}

func TestIDsAreInsertionOrder(t *testing.T) {
	t.Parallel()
	tbl := New()
	a := tbl.InternNamed("A")
	b := tbl.NewAux()
	c := tbl.InternNamed("C")
	got := tbl.IDs()
	want := []ID{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestVariableStringUsesAuxPrefix(t *testing.T) {
	t.Parallel()
	tbl := New()
	id := tbl.NewAux()
	v, _ := tbl.Lookup(id)
	if got, want := v.String("aux"), "aux1"; got != want {
		t.Fatalf("Variable.String(%q) = %q, want %q", "aux", got, want)
	}
}
