package auth

// Credentials maps usernames to plain-text passwords.
type Credentials map[string]string

// DefaultCredentials returns the demo user table.
func DefaultCredentials() Credentials {
	return Credentials{
		"admin": "admin",
		"user":  "user",
	}
}

// Verify reports whether the username/password pair matches the table.
// Unknown users and wrong passwords are indistinguishable to the caller so
// the login response cannot be used to enumerate users.
func (c Credentials) Verify(username, password string) bool {
	expected, ok := c[username]
	return ok && expected == password
}
