// Package security provides password hashing and shared-secret
// validation tokens.
//
// Passwords are hashed with bcrypt. Validation tokens are self-salted
// strings derived from a shared secret, used to check that two parties
// hold the same secret without sending it on the wire.
package security
