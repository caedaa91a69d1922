package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p RunPayload) Validate() error {
	if p.Steps <= 0 {
		return errors.New("steps must be positive")
	}
	return nil
}

func (p WhisperPayload) Validate() error {
	if p.Persona == "" {
		return errors.New("persona is required")
	}
	if p.Text == "" {
		return errors.New("whisper text cannot be empty")
	}
	return nil
}

func (p InjectEventPayload) Validate() error {
	if p.Type == "" {
		return errors.New("event type is required")
	}
	return nil
}

func (p SetClockPayload) Validate() error {
	if p.Clock == "" {
		return errors.New("clock string is required")
	}
	return nil
}
