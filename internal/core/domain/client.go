package domain

import (
	"errors"
	"fmt"
)

// ClientType classifies a client and decides the credit policy applied to its users.
type ClientType int

const (
	ClientStandard ClientType = iota + 1
	ClientImportant
	ClientVeryImportant
)

var ErrUnknownClientType = errors.New("unknown client type")
var ErrClientNotFound = errors.New("client not found")

var clientTypeNames = map[ClientType]string{
	ClientStandard:      "StandardClient",
	ClientImportant:     "ImportantClient",
	ClientVeryImportant: "VeryImportantClient",
}

// ParseClientType converts a stored classification tag into a ClientType.
func ParseClientType(tag string) (ClientType, error) {
	for t, name := range clientTypeNames {
		if name == tag {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClientType, tag)
}

func (t ClientType) String() string {
	if name, ok := clientTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ClientType(%d)", int(t))
}

// Valid reports whether t is one of the recognised classifications.
func (t ClientType) Valid() bool {
	_, ok := clientTypeNames[t]
	return ok
}

func (t ClientType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClientType, int(t))
	}
	return []byte(clientTypeNames[t]), nil
}

func (t *ClientType) UnmarshalText(b []byte) error {
	parsed, err := ParseClientType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Client is the organisation a user registers under. Immutable once fetched.
type Client struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Type ClientType `json:"type"`
}
