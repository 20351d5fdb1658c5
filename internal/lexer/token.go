package lexer

import "github.com/rshaw/braid/internal/source"

// Position is the shared source-position type; re-exported here so callers
// of the lexer rarely need to import internal/source directly.
type Position = source.Position

// Token is a single lexical unit: its type, the exact source text it
// matched, and the position of its first character.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
