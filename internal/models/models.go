// Package models defines the data structures shared by the SehatSahara dialogue core,
// its storage backends, messaging channels and HTTP API.
package models

import (
	"errors"
	"strings"
)

// Request validation limits.
const (
	// MaxMessageLength bounds a single inbound utterance.
	MaxMessageLength = 4096
	// MaxUserIDLength bounds user identifiers accepted from the API.
	MaxUserIDLength = 256
)

// Error variables for request validation.
var (
	ErrEmptyUserID         = errors.New("user_id is required")
	ErrUserIDTooLong       = errors.New("user_id exceeds maximum length")
	ErrEmptyMessage        = errors.New("message is required")
	ErrMessageTooLong      = errors.New("message exceeds maximum length")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidConfidence   = errors.New("confidence must be between 0 and 1")
)

// ChatRequest is the body of a single-utterance chat turn.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Validate checks that the request carries a usable user and message.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrEmptyUserID
	}
	if len(r.UserID) > MaxUserIDLength {
		return ErrUserIDTooLong
	}
	return validateMessage(r.Message)
}

// RespondRequest carries an already-classified utterance for GenerateResponse.
type RespondRequest struct {
	Message     string         `json:"message"`
	NLU         NLUResult      `json:"nlu"`
	UserContext *UserContext   `json:"user_context,omitempty"`
	History     []HistoryEntry `json:"history,omitempty"`
	Strict      bool           `json:"strict"`
}

// Validate checks the message and the NLU confidence range.
func (r *RespondRequest) Validate() error {
	if err := validateMessage(r.Message); err != nil {
		return err
	}
	if r.NLU.Confidence < 0 || r.NLU.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}

// ClassifyRequest asks the server to run its own classifier before responding.
type ClassifyRequest struct {
	Message     string       `json:"message"`
	UserContext *UserContext `json:"user_context,omitempty"`
	Strict      *bool        `json:"strict,omitempty"`
}

// Validate checks the message.
func (r *ClassifyRequest) Validate() error {
	return validateMessage(r.Message)
}

// SummaryRequest asks for a prescription summary in a given language.
type SummaryRequest struct {
	Language     Language      `json:"language"`
	Prescription *Prescription `json:"prescription"`
}

func validateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return ErrEmptyMessage
	}
	if len(msg) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// MessageStatus represents the delivery status of an outbound channel message.
type MessageStatus string

const (
	// MessageStatusSent indicates the message was handed to the provider.
	MessageStatusSent MessageStatus = "sent"
	// MessageStatusDelivered indicates the message reached the device.
	MessageStatusDelivered MessageStatus = "delivered"
	// MessageStatusRead indicates the message was read.
	MessageStatusRead MessageStatus = "read"
	// MessageStatusFailed indicates delivery failed.
	MessageStatusFailed MessageStatus = "failed"
)

// Receipt represents a delivery event for an outbound message.
type Receipt struct {
	To     string        `json:"to"`
	Status MessageStatus `json:"status"`
	Time   int64         `json:"time"`
}

// Response represents an incoming message from a user on a messaging channel.
// ID is the provider message identifier used for inbound deduplication; it may be empty.
type Response struct {
	ID   string `json:"id,omitempty"`
	From string `json:"from"`
	Body string `json:"body"`
	Time int64  `json:"time"`
}

// APIStatus represents the status of an API envelope.
type APIStatus string

const (
	APIStatusOK    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}
