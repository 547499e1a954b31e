package application

// Owns reports whether callerID may act on a resource owned by ownerID.
// Ownership is strict equality of non-empty ids; there are no roles and no
// admin override. List, search and stats never call this: they scope at the
// query level instead, so foreign rows are not even read.
func Owns(ownerID, callerID string) bool {
	return ownerID != "" && ownerID == callerID
}
