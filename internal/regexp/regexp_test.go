package regexp

import "testing"

func TestLiteralMatch(t *testing.T) {
	prog, err := Compile("abc", "")
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Test([]rune("xxabcyy"), 0) {
		t.Fatal("expected match")
	}
	if prog.Test([]rune("xyz"), 0) {
		t.Fatal("expected no match")
	}
}

func TestQuantifiers(t *testing.T) {
	prog, err := Compile("ab+c", "")
	if err != nil {
		t.Fatal(err)
	}
	caps := prog.FindSubmatchIndex([]rune("xabbbcx"), 0)
	if caps == nil {
		t.Fatal("expected match")
	}
	if string([]rune("xabbbcx")[caps[0]:caps[1]]) != "abbbc" {
		t.Fatalf("unexpected match span: %v", caps)
	}
}

func TestCaptureGroups(t *testing.T) {
	prog, err := Compile(`(\d+)-(\d+)`, "")
	if err != nil {
		t.Fatal(err)
	}
	input := []rune("order 12-34 shipped")
	caps := prog.FindSubmatchIndex(input, 0)
	if caps == nil || len(caps) != 6 {
		t.Fatalf("expected 3 groups worth of indices, got %v", caps)
	}
	if string(input[caps[2]:caps[3]]) != "12" || string(input[caps[4]:caps[5]]) != "34" {
		t.Fatalf("unexpected captures: %q %q",
			string(input[caps[2]:caps[3]]), string(input[caps[4]:caps[5]]))
	}
}

func TestBackreference(t *testing.T) {
	prog, err := Compile(`(\w+) \1`, "")
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Test([]rune("hello hello world"), 0) {
		t.Fatal("expected backreference match")
	}
	if prog.Test([]rune("hello world"), 0) {
		t.Fatal("expected no match without repeated word")
	}
}

func TestCharacterClassAndShorthand(t *testing.T) {
	prog, err := Compile(`[a-c]\d\s\w`, "")
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Test([]rune("b5 x"), 0) {
		t.Fatal("expected match")
	}
}

func TestAnchorsAndAlternation(t *testing.T) {
	prog, err := Compile(`^(cat|dog)$`, "")
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Test([]rune("dog"), 0) {
		t.Fatal("expected anchored alternation match")
	}
	if prog.Test([]rune("dogs"), 0) {
		t.Fatal("expected no match: trailing characters violate $")
	}
}

func TestCaseInsensitive(t *testing.T) {
	prog, err := Compile("HELLO", "i")
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Test([]rune("say hello now"), 0) {
		t.Fatal("expected case-insensitive match")
	}
}
