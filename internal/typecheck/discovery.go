package typecheck

import (
	"github.com/rshaw/braid/internal/core"
	"github.com/rshaw/braid/internal/types"
)

// discover performs Phase 1 for a single block: it registers every
// val/var/def name introduced directly by nodes, in order, before any
// initializer or body is examined. Nested blocks (lambda bodies, if/while
// bodies) run their own discover pass when Phase 2 reaches them, so this
// never recurses.
func (c *Checker) discover(nodes []core.Node) {
	for _, n := range nodes {
		switch decl := n.(type) {
		case *core.Let:
			if lambda, ok := decl.Init.(*core.Lambda); ok {
				c.Env.Define(decl.Name, types.Binding{Type: c.lambdaScheme(lambda), Mutable: false})
				continue
			}
			c.Env.Define(decl.Name, types.Binding{Type: c.annotationOrFresh(decl, decl.TypeAnn), Mutable: false})
		case *core.LetMut:
			c.Env.Define(decl.Name, types.Binding{Type: c.annotationOrFresh(decl, decl.TypeAnn), Mutable: true})
		}
	}
}

// lambdaScheme builds the forward-declared type of a `def`: a Fun whose
// parameters and result are each either the annotated type or a fresh
// variable. Phase 2's inferLambda unifies the body's actual type against
// this same scheme, which is what lets the body call the function (or a
// sibling `def` discovered alongside it) before either body has been
// checked.
func (c *Checker) lambdaScheme(lambda *core.Lambda) *types.Type {
	params := make([]*types.Type, len(lambda.Params))
	minParams := len(lambda.Params)
	sawDefault := false
	for i, p := range lambda.Params {
		params[i] = c.annotationOrFresh(lambda, p.TypeAnn)
		if p.Default != nil && !sawDefault {
			minParams = i
			sawDefault = true
		}
	}
	result := c.annotationOrFresh(lambda, lambda.ReturnAnn)
	return types.FunWithMin(params, nil, result, minParams)
}

// annotationOrFresh resolves a surface annotation to a concrete Type, or
// hands out a fresh unification variable when ann is absent. pos supplies
// position info for an "unknown type" error; the error is recorded and a
// fresh variable stands in so discovery can finish registering the block's
// names, after which the recorded error stops Phase 2 before it starts.
func (c *Checker) annotationOrFresh(pos core.Node, ann string) *types.Type {
	if ann == "" {
		return c.Vars.Fresh()
	}
	t, ok := resolveAnnotation(ann)
	if !ok {
		c.failAt(pos, "unknown type: %s", ann)
		return c.Vars.Fresh()
	}
	return t
}
