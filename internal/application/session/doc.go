// Package session implements cookie-session management on top of the
// storage port.
//
// A session is an opaque 128-bit hex token mapped to a JSON record under a
// namespaced store key with a TTL. Expiration is store-enforced: an expired
// session is observationally identical to a deleted one.
package session
