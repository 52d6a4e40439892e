package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 1, End: 3}, Span{Start: 5, End: 8}, Span{Start: 1, End: 8}},
		{"nested", Span{Start: 1, End: 10}, Span{Start: 2, End: 3}, Span{Start: 1, End: 10}},
		{"other file", Span{File: 1, Start: 1, End: 2}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 1, End: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanAt(t *testing.T) {
	sp := Span{File: 3, Start: 4, End: 9}.At()
	if !sp.Empty() || sp.Start != 9 || sp.File != 3 {
		t.Errorf("At() = %v", sp)
	}
	if (Span{Start: 2, End: 7}).Len() != 5 {
		t.Error("Len() mismatch")
	}
}
