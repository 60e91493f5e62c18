package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = "admin"

// User is keyed by email. Any profile attribute the client sent on login is kept
// in Profile and flattened back into the JSON document.
type User struct {
	ID      primitive.ObjectID     `bson:"_id,omitempty" json:"-"`
	Email   string                 `bson:"email" json:"-"`
	Role    string                 `bson:"role,omitempty" json:"-"`
	Profile map[string]interface{} `bson:",inline" json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(u.Profile)+3)
	for k, v := range u.Profile {
		doc[k] = v
	}
	if !u.ID.IsZero() {
		doc["_id"] = u.ID
	}
	doc["email"] = u.Email
	if u.Role != "" {
		doc["role"] = u.Role
	}
	return json.Marshal(doc)
}

// Reserved keys are owned by the server and never taken from a profile body.
var reservedProfileKeys = []string{"_id", "email", "role"}

// CleanProfile returns a copy of p without the reserved keys.
func CleanProfile(p map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range reservedProfileKeys {
		delete(out, k)
	}
	return out
}
