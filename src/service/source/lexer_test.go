package source

import (
	"strings"
	"testing"
)

func lexKinds(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	return tokens
}

func TestLexBasics(t *testing.T) {
	src := `class A { // line comment
	/* block
	   comment */
	String s = "a { b"; char c = '}';
	int n = 0x1F_00;
}`
	tokens := lexKinds(t, src)

	var idents, strs, chars, nums int
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenIdent:
			idents++
		case TokenString:
			strs++
		case TokenChar:
			chars++
		case TokenNumber:
			nums++
		}
	}
	if idents != 8 { // class A String s char c int n
		t.Errorf("ident count = %d", idents)
	}
	if strs != 1 || chars != 1 || nums != 1 {
		t.Errorf("literals = %d strings, %d chars, %d numbers", strs, chars, nums)
	}

	// Braces inside literals must not surface as symbol tokens
	var braces int
	for _, tok := range tokens {
		if tok.Kind == TokenSymbol && (tok.Text == "{" || tok.Text == "}") {
			braces++
		}
	}
	if braces != 2 {
		t.Errorf("brace symbols = %d, want the class body pair only", braces)
	}
}

func TestLexTextBlock(t *testing.T) {
	src := "class A { String q = \"\"\"\n  select { x }\n  from \"t\"\n  \"\"\"; }"
	tokens := lexKinds(t, src)

	var block *Token
	for i := range tokens {
		if tokens[i].Kind == TokenString {
			block = &tokens[i]
		}
	}
	if block == nil {
		t.Fatal("no string token for text block")
	}
	if !strings.Contains(block.Text, "select { x }") || !strings.Contains(block.Text, `"t"`) {
		t.Errorf("text block contents = %q", block.Text)
	}
}

func TestLexLineNumbers(t *testing.T) {
	tokens := lexKinds(t, "class A\n{\n\nint x;\n}")
	want := map[string]int{"class": 1, "A": 1, "{": 2, "int": 4, "x": 4, ";": 4, "}": 5}
	for _, tok := range tokens {
		if line, ok := want[tok.Text]; ok && tok.Line != line {
			t.Errorf("token %q at line %d, want %d", tok.Text, tok.Line, line)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `class A { String s = "abc`},
		{"newline in string", "class A { String s = \"abc\ndef\"; }"},
		{"unterminated comment", "class A { /* no close"},
		{"unterminated char", "class A { char c = 'x"},
		{"unterminated text block", `class A { String s = """never closed`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lex([]byte(tt.src)); err == nil {
				t.Error("expected lex error")
			}
		})
	}
}
