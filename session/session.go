package session

import "net/http"

// User identifies the requester. A zero User means no one is signed in.
type User struct {
	ID string
}

func (u User) Authenticated() bool {
	return u.ID != ""
}

// FromRequest extracts the current user from the auth headers the proxy
// sets. No header means an anonymous request, not an error.
func FromRequest(r *http.Request) User {
	userID := r.Header.Get("X-Auth-User")
	if userID == "" {
		userID = r.Header.Get("X-Forwarded-User")
	}
	return User{ID: userID}
}
