package player

import (
	"fmt"
	"unicode"

	"github.com/pixil98/go-errors"
)

type Character struct {
	Name     string `json:"name"`
	Password string `json:"password"` //TODO make this okay to save
}

func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	for _, r := range c.Name {
		if !unicode.IsLetter(r) {
			el.Add(fmt.Errorf("name must contain only letters"))
			break
		}
	}
	if c.Password == "" {
		el.Add(fmt.Errorf("password is required"))
	}

	return el.Err()
}
