// Package wire implements the length-prefixed message framing used to
// exchange JSON-encoded control messages between platform processes, e.g.
// a build master and a build agent.
//
// One frame is the ASCII decimal byte length of the payload, a newline,
// then exactly that many payload bytes:
//
//	17\n{"action": "bla"}
//
// The length prefix removes any need to escape delimiter bytes inside the
// payload, and ReadFrame assembles exactly the declared number of bytes
// however fragmented the transport delivers them.
//
// The protocol carries no deadline of its own; callers impose read/write
// deadlines on the underlying connection. A stream must have a single
// reader: ReadFrame calls on the same reader are strictly sequential.
package wire
