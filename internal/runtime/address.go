package runtime

// Address is an opaque handle into the Store, produced by a monotonically
// increasing counter scoped to one interpreter session.
type Address int

// Counter hands out fresh addresses. A session keeps exactly one Counter
// so addresses across a REPL's entire lifetime never collide, even after
// many incremental evaluations.
type Counter struct {
	next Address
}

// Next allocates and returns a fresh address.
func (c *Counter) Next() Address {
	addr := c.next
	c.next++
	return addr
}
