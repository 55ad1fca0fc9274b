// Package tree compiles catalog records into an immutable forest of nodes.
//
// # Node Hierarchy
//
// Every record becomes exactly one node. A node's parent is the record whose
// path is the node's path minus its last segment:
//
//	Vehicle
//	├── Vehicle.Speed
//	└── Vehicle.Body
//	    └── Vehicle.Body.Trunk
//	        └── Vehicle.Body.Trunk.IsOpen
//
// Siblings keep declaration order. A record whose implied parent is missing
// becomes an additional root and is listed by Forest.Detached. Two records
// with the same path reject the whole catalog with ErrDuplicatePath.
//
// # Storage
//
// Nodes live in a single arena owned by the Forest and refer to each other
// by NodeID. Parent links are plain indices used for lookup only. A Forest
// and its nodes are never modified after Compile returns and may be read
// from any number of goroutines without locking.
//
// # Queries
//
// Descendants lists a node's subtree in grouped pre-order: the direct
// children first, then each child's own listing in turn. For a root with
// children [A, B, C] where A has child D and B has child E, the listing is
// [A, B, C, D, E].
//
// AncestryLine picks, from that listing, the nodes lying on the way to a
// given descendant.
package tree
