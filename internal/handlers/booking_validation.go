package handlers

import (
	"bytes"
	"encoding/json"
	"net/mail"
	"strings"
)

const (
	maxNameLength    = 100
	maxMessageLength = 5000
)

// looseString accepts a JSON string, number or boolean. Booking forms post
// age and beenHiking in whichever shape the browser produced.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = looseString(raw)
	return nil
}

func (s looseString) String() string {
	return strings.TrimSpace(string(s))
}

func validateCheckoutRequest(req createCheckoutSessionRequest) string {
	if strings.TrimSpace(req.Email) == "" {
		return ""
	}
	if !validEmail(req.Email) {
		return "email must be a valid email address"
	}
	if len(strings.TrimSpace(req.FirstName)) > maxNameLength || len(strings.TrimSpace(req.LastName)) > maxNameLength {
		return "names must be at most 100 characters"
	}
	return ""
}

func validateContactRequest(req contactRequest) string {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return "Missing required fields"
	}
	if !validEmail(req.Email) {
		return "email must be a valid email address"
	}
	if len(strings.TrimSpace(req.Name)) > maxNameLength {
		return "name must be at most 100 characters"
	}
	if len(req.Message) > maxMessageLength {
		return "message must be at most 5000 characters"
	}
	return ""
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	return err == nil && addr.Address == strings.TrimSpace(value)
}
