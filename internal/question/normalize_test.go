package question

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The apple is red.", "the apple is red"},
		{"the_apple_is red", "the apple is red"},
		{"  The   apple,  is  red!  ", "the apple is red"},
		{"don't stop", "don't stop"},
		{"well-known fact", "well-known fact"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeAnswer(c.in); got != c.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAnswer_Idempotent(t *testing.T) {
	inputs := []string{
		"The_quick, brown fox!",
		"  spaced   out  ",
		"already normal",
	}
	for _, in := range inputs {
		once := NormalizeAnswer(in)
		if twice := NormalizeAnswer(once); twice != once {
			t.Errorf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
