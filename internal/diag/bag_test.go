package diag

import (
	"testing"

	"fern/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		bag.Add(NewError(SynExtraneousInput, source.Span{Start: uint32(i)}, "x"))
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", bag.Dropped())
	}
}

func TestBagUnlimited(t *testing.T) {
	bag := NewBag(0)
	for range 500 {
		bag.Add(NewError(SynMissingToken, source.Span{}, "m"))
	}
	if bag.Len() != 500 || bag.ErrorCount() != 500 {
		t.Fatalf("expected 500 items, got %d", bag.Len())
	}
}

func TestBagSortIsStable(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SynMissingToken, source.Span{Start: 5, End: 6}, "second"))
	bag.Add(New(SevWarning, LexBadNumber, source.Span{Start: 1, End: 2}, "first"))
	bag.Add(NewError(SynMissingToken, source.Span{Start: 5, End: 6}, "third"))
	bag.Sort()

	want := []string{"first", "second", "third"}
	for i, d := range bag.Items() {
		if d.Message != want[i] {
			t.Fatalf("item %d: got %q, want %q", i, d.Message, want[i])
		}
	}
	if !bag.HasErrors() || bag.ErrorCount() != 2 {
		t.Fatal("expected two errors")
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(0)
	a.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "token recognition error at: '#'"))
	b := NewBag(1)
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "token recognition error at: '#'"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("expected 2 items after merge, got %d", a.Len())
	}
	if a.Dropped() != 0 {
		t.Fatalf("expected nothing dropped, got %d", a.Dropped())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynExtraneousInput: "SYN2001",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown code should fall back to the generic title")
	}
}

func TestSeverityNames(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", 9: "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Errorf("%d: got %q, want %q", sev, got, want)
		}
	}
	if Severity(3).Valid() || !SevError.Valid() {
		t.Fatal("only the three known severities are valid")
	}
}

func TestBagAddDropped(t *testing.T) {
	bag := NewBag(1)
	bag.Add(NewError(SynMissingToken, source.Span{}, "a"))
	bag.Add(NewError(SynMissingToken, source.Span{}, "b"))
	bag.AddDropped(2)
	bag.AddDropped(-1)
	if bag.Len() != 1 || bag.Dropped() != 3 {
		t.Fatalf("len %d dropped %d", bag.Len(), bag.Dropped())
	}
}
