// Package core provides the foundational types shared by every other package
// of the module:
//
//   - Signature (ordered parameter types plus a return type)
//   - Handle (an immutable callable bound to a Signature)
//   - the error taxonomy surfaced by dispatchers (linkage, contract
//     violation, constant violation, argument mismatch)
//
// The package intentionally keeps composition (package handle) and the
// specialization engine (package dispatch) out of scope, exposing small types
// that both build on.
package core
