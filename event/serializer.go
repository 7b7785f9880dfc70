package event

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/dataprovider/codec"
)

// Serializer converts envelopes to and from wire bytes, rejecting envelopes
// that miss required fields.
type Serializer struct {
	codec     codec.Codec
	validator *validator.Validate
}

// NewSerializer creates a serializer. A nil codec selects codec.Default.
func NewSerializer(c codec.Codec) *Serializer {
	if c == nil {
		c = codec.Default
	}
	return &Serializer{
		codec:     c,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Serialize validates e and encodes it.
func (s *Serializer) Serialize(e Envelope) ([]byte, error) {
	if err := s.validator.Struct(e); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	data, err := s.codec.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("serialize event: %w", err)
	}
	return data, nil
}

// Deserialize decodes and validates an envelope.
func (s *Serializer) Deserialize(data []byte) (Envelope, error) {
	var e Envelope
	if err := s.codec.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("deserialize event: %w", err)
	}
	if err := s.validator.Struct(e); err != nil {
		return Envelope{}, fmt.Errorf("invalid event: %w", err)
	}
	return e, nil
}
