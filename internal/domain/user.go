package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// User is a registered library member. The id is generated once by NewUser.
type User struct {
	id    string
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// NewUser validates name and email and assigns a fresh UUID.
func NewUser(name, email string) (User, error) {
	u := User{id: uuid.New().String(), Name: name, Email: email}
	if err := validate.Struct(u); err != nil {
		return User{}, validationError("user", err)
	}
	return u, nil
}

// ID returns the user identity.
func (u User) ID() string {
	return u.id
}

func (u User) String() string {
	return fmt.Sprintf("User: %s, Email: %s, ID: %s", u.Name, u.Email, u.id)
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MarshalJSON includes the unexported id.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{ID: u.id, Name: u.Name, Email: u.Email})
}
