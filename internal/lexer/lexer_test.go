package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `val x = 5
x += 10
print("hi", true)`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{VAL, "val"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "5"},
		{NEWLINE, "\n"},
		{IDENT, "x"},
		{PLUS_ASSIGN, "+="},
		{INT, "10"},
		{NEWLINE, "\n"},
		{IDENT, "print"},
		{LPAREN, "("},
		{STRING, "hi"},
		{COMMA, ","},
		{TRUE, "true"},
		{RPAREN, ")"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected lex error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected lex error for unterminated string")
	}
	if err.Pos.Line != 1 || err.Pos.Column != 1 {
		t.Fatalf("expected error at opening quote 1:1, got %s", err.Pos)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\\d\"e"`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\nb\tc\\d\"e"
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestComment(t *testing.T) {
	l := New("1 // a comment\n2")
	first, _ := l.NextToken()
	if first.Type != INT || first.Literal != "1" {
		t.Fatalf("unexpected first token: %+v", first)
	}
	nl, _ := l.NextToken()
	if nl.Type != NEWLINE {
		t.Fatalf("expected newline after comment, got %s", nl.Type)
	}
	second, _ := l.NextToken()
	if second.Type != INT || second.Literal != "2" {
		t.Fatalf("unexpected second token: %+v", second)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("ab\ncd")
	a, _ := l.NextToken()
	if a.Pos != (Position{Line: 1, Column: 1}) {
		t.Fatalf("unexpected pos for 'ab': %+v", a.Pos)
	}
	nl, _ := l.NextToken()
	if nl.Pos.Line != 1 {
		t.Fatalf("expected newline token still on line 1, got %+v", nl.Pos)
	}
	c, _ := l.NextToken()
	if c.Pos != (Position{Line: 2, Column: 1}) {
		t.Fatalf("expected 'cd' at 2:1, got %+v", c.Pos)
	}
}
