package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Span
		want  Span
	}{
		{
			name: "b extends right",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 1, Start: 15, End: 30},
			want: Span{File: 1, Start: 10, End: 30},
		},
		{
			name: "b extends left",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 1, Start: 5, End: 12},
			want: Span{File: 1, Start: 5, End: 20},
		},
		{
			name: "b inside a",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 1, Start: 12, End: 14},
			want: Span{File: 1, Start: 10, End: 20},
		},
		{
			name: "different files ignored",
			a:    Span{File: 1, Start: 10, End: 20},
			b:    Span{File: 2, Start: 0, End: 100},
			want: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanEmptyAndLen(t *testing.T) {
	sp := Span{File: 0, Start: 7, End: 7}
	if !sp.Empty() {
		t.Errorf("expected empty span")
	}
	sp.End = 10
	if sp.Empty() {
		t.Errorf("expected non-empty span")
	}
	if sp.Len() != 3 {
		t.Errorf("Len: got %d, want 3", sp.Len())
	}
}
