package types

// VarGen hands out fresh unification-variable ids. A one-shot file-mode
// run starts a fresh VarGen, since there is no later input an id could
// collide with. A REPL session instead keeps one VarGen (and one Subst)
// for its entire lifetime, shared by every input's Checker: a prior
// input's committed binding types keep referencing the ids they were
// built with, so a later input must never reissue one of those ids, or
// an unrelated unification could wrongly bind it and trip the
// occurs-check against a type that id was never actually part of. Like
// the evaluator's address Counter, a VarGen is not rolled back when a
// REPL input's type-check attempt fails: the ids it consumed are simply
// never referenced again rather than being recycled.
type VarGen struct {
	next int
}

// Fresh returns a new unification variable.
func (g *VarGen) Fresh() *Type {
	id := g.next
	g.next++
	return NewVar(id)
}
