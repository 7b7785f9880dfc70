// Package event defines the audit envelope published for store activity.
package event

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/dataprovider/codec"
)

// Type tells the audit pipeline where to persist an event.
type Type string

const (
	// TypeDBStore stores the event in the audit database only.
	TypeDBStore Type = "DB_STORE"
	// TypeFileStore stores the event in the audit file only.
	TypeFileStore Type = "FILE_STORE"
	// TypeFullStore stores the event in the database and the file.
	TypeFullStore Type = "FULL_STORE"
	// TypeError marks an error event.
	TypeError Type = "ERROR_EVENT"
	// TypeNonStore is delivered but not persisted.
	TypeNonStore Type = "NON_STORE"
)

// ParseType parses an event type name.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeDBStore, TypeFileStore, TypeFullStore, TypeError, TypeNonStore:
		return t, nil
	default:
		return "", fmt.Errorf("unknown event type %q", s)
	}
}

// Envelope is an audit event.
type Envelope struct {
	CorrelationID string          `json:"correlationId" validate:"required"`
	Type          Type            `json:"eventType" validate:"required,oneof=DB_STORE FILE_STORE FULL_STORE ERROR_EVENT NON_STORE"`
	Username      string          `json:"username" validate:"required"`
	Name          string          `json:"eventName" validate:"required"`
	Application   string          `json:"applicationName" validate:"required"`
	CoreName      string          `json:"coreName"`
	Body          json.RawMessage `json:"eventBody"`
}

// ErrorBody is the body of TypeError envelopes.
type ErrorBody struct {
	Message     string `json:"message"`
	Cause       string `json:"cause"`
	Description string `json:"description"`
}

// New creates an envelope with a fresh correlation id. body is encoded with
// codec.Default.
func New(typ Type, username, name, application, coreName string, body any) (Envelope, error) {
	raw, err := codec.Default.Marshal(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s body: %w", name, err)
	}
	return Envelope{
		CorrelationID: uuid.NewString(),
		Type:          typ,
		Username:      username,
		Name:          name,
		Application:   application,
		CoreName:      coreName,
		Body:          raw,
	}, nil
}

// NewError creates a TypeError envelope describing cause.
func NewError(username, name, application, coreName string, cause error, description string) (Envelope, error) {
	body := ErrorBody{Description: description}
	if cause != nil {
		body.Message = cause.Error()
		body.Cause = fmt.Sprintf("%T", cause)
	}
	return New(TypeError, username, name, application, coreName, body)
}

// DecodeBody decodes the envelope body into a T.
func DecodeBody[T any](e Envelope) (T, error) {
	var v T
	if len(e.Body) == 0 {
		return v, fmt.Errorf("event %s has no body", e.CorrelationID)
	}
	if err := codec.Default.Unmarshal(e.Body, &v); err != nil {
		return v, fmt.Errorf("decode %s body: %w", e.Name, err)
	}
	return v, nil
}

// Equal reports whether both envelopes carry the same correlation id.
func (e Envelope) Equal(o Envelope) bool {
	return e.CorrelationID == o.CorrelationID
}

func (e Envelope) String() string {
	return fmt.Sprintf("username = %s correlationId = %s eventType = %s eventName = %s applicationName = %s coreName = %s eventBody = %s",
		e.Username, e.CorrelationID, e.Type, e.Name, e.Application, e.CoreName, e.Body)
}
