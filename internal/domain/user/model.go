package user

import "fmt"

// User binds a unique username to the credential issued at registration.
type User struct {
	Username string
	Token    string
}

// Principal is the authenticated caller attached to a request after the
// bearer token resolves.
type Principal struct {
	Username string
	Token    string
}

func (u User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Token == "" {
		return fmt.Errorf("user token is required")
	}

	return nil
}
