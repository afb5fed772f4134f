package textutil_test

import (
	"reflect"
	"testing"

	"moviesphere/internal/textutil"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tom Hanks", "tom_hanks"},
		{"Penélope Cruz", "penelope_cruz"},
		{"The Lord of the Rings: The Two Towers", "the_lord_of_the_rings_the_two_towers"},
		{"  spaced   out  ", "spaced_out"},
		{"Se7en", "se7en"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := textutil.Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"This movie ROCKED!", []string{"this", "movie", "rocked"}},
		{"don't stop", []string{"don't", "stop"}},
		{"  ", nil},
		{"a,b;c", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		got := textutil.Tokenize(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
