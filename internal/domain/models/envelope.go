package models

import (
	"bytes"
	"encoding/json"
)

// Declared success codes carried in response bodies.
const (
	CodeOK      = 200
	CodeCreated = 201
)

// Envelope is the {code, message, data} body the microservices return.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// UserResult is the response of the create-user and get-user endpoints.
type UserResult = Envelope[Field[User]]

// SaveResult is the response of the save endpoint.
type SaveResult = Envelope[Field[RouteRecord]]

// StatusResult is a body that carries only a code and message.
type StatusResult = Envelope[json.RawMessage]

// ListResult is the response of either listing endpoint. The composite
// service nests routes under data.routes; the atomic service returns them
// directly as data.
type ListResult struct {
	Code    int
	Message string
	Routes  []RouteRecord
}

func (l *ListResult) UnmarshalJSON(b []byte) error {
	var raw Envelope[json.RawMessage]
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	l.Code = raw.Code
	l.Message = raw.Message
	l.Routes = nil

	data := bytes.TrimSpace(raw.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '[':
		return json.Unmarshal(data, &l.Routes)
	default:
		var nested struct {
			Routes []RouteRecord `json:"routes"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		l.Routes = nested.Routes
		return nil
	}
}

// DecodeList decodes a body that is either a bare JSON array or an
// envelope whose data is that array.
func DecodeList[T any](b []byte) ([]T, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var out []T
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env Envelope[[]T]
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
