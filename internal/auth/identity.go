// Package auth verifies bearer tokens and turns verified identities into admin
// capabilities.
package auth

// Identity is a verified claim set taken from a token.
type Identity struct {
	Email string
}

// AdminIdentity is an Identity whose user record holds the admin role. The only way
// to obtain one is Authorizer.Authorize.
type AdminIdentity struct {
	id Identity
}

func (a AdminIdentity) Identity() Identity { return a.id }

func (a AdminIdentity) Email() string { return a.id.Email }
