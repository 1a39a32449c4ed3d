// Package auth provides the fixed credentials table used by the login
// endpoint. This is deliberately a demo-grade mapping, not an identity
// system: passwords are compared by exact string equality.
package auth
