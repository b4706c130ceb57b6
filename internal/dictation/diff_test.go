package dictation

import "testing"

func opsString(ops []DiffOp) string {
	out := make([]rune, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case DiffEqual:
			out = append(out, '=')
		case DiffInsert:
			out = append(out, '+')
		case DiffDelete:
			out = append(out, '-')
		}
	}
	return string(out)
}

func TestLCSDiff_Equal(t *testing.T) {
	ops := LCSDiff("apple", "apple")
	if got := opsString(ops); got != "=====" {
		t.Errorf("got %q, want all equal", got)
	}
}

func TestLCSDiff_MissingLetter(t *testing.T) {
	ops := LCSDiff("aple", "apple")
	if got := opsString(ops); got != "==-==" {
		t.Errorf("got %q, want one delete", got)
	}
}

func TestLCSDiff_ExtraLetter(t *testing.T) {
	ops := LCSDiff("appple", "apple")
	equal, insert, del := 0, 0, 0
	for _, op := range ops {
		switch op.Kind {
		case DiffEqual:
			equal++
		case DiffInsert:
			insert++
		case DiffDelete:
			del++
		}
	}
	if equal != 5 || insert != 1 || del != 0 {
		t.Errorf("got %d/%d/%d equal/insert/delete, want 5/1/0", equal, insert, del)
	}
}

func TestLCSDiff_Substitution(t *testing.T) {
	ops := LCSDiff("apqle", "apple")
	equal, insert, del := 0, 0, 0
	for _, op := range ops {
		switch op.Kind {
		case DiffEqual:
			equal++
		case DiffInsert:
			insert++
		case DiffDelete:
			del++
		}
	}
	if equal != 4 || insert != 1 || del != 1 {
		t.Errorf("got %d/%d/%d equal/insert/delete, want 4/1/1", equal, insert, del)
	}
}

func TestLCSDiff_ReconstructsBothStrings(t *testing.T) {
	user, expected := "recieve", "receive"
	ops := LCSDiff(user, expected)
	var u, e []rune
	for _, op := range ops {
		switch op.Kind {
		case DiffEqual:
			u = append(u, op.Ch)
			e = append(e, op.Ch)
		case DiffInsert:
			u = append(u, op.Ch)
		case DiffDelete:
			e = append(e, op.Ch)
		}
	}
	if string(u) != user {
		t.Errorf("user reconstruction = %q, want %q", string(u), user)
	}
	if string(e) != expected {
		t.Errorf("expected reconstruction = %q, want %q", string(e), expected)
	}
}

func TestLCSDiff_Empty(t *testing.T) {
	if got := opsString(LCSDiff("", "cat")); got != "---" {
		t.Errorf("got %q, want all deletes", got)
	}
	if got := opsString(LCSDiff("cat", "")); got != "+++" {
		t.Errorf("got %q, want all inserts", got)
	}
}
