package typecheck

import "github.com/rshaw/braid/internal/types"

// resolveAnnotation maps a surface type annotation identifier to its Type.
// These four names are the only ones the surface grammar's annotation
// position accepts; anything else is unknown.
func resolveAnnotation(name string) (*types.Type, bool) {
	switch name {
	case "Int":
		return types.Int, true
	case "Bool":
		return types.Bool, true
	case "String":
		return types.String, true
	case "Unit":
		return types.Unit, true
	default:
		return nil, false
	}
}
