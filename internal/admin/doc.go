// Package admin implements the gate in front of manual blog generation.
//
// The gate compares what the user typed against the configured admin secret
// and, once unlocked, allows one generation request at a time. The same
// secret is sent to the backend as X-Admin-Key, so anyone who can read the
// client configuration can also trigger generation. The gate is a
// convenience, not an access control mechanism.
package admin
