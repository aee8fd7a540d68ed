// Package apierror provides the typed domain errors and the JSON envelope
// shared by every endpoint. All errors returned to clients go through this
// package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.) outside of debug mode.
package apierror

import "net/http"

// Kind classifies a domain error so the dispatcher can map it to a status.
type Kind int

const (
	KindValidation Kind = iota
	KindUpload
	KindAuth
	KindNotFound
	KindPersistence
)

// Error is the canonical domain error. Message is safe for end users;
// Detail carries internal context and is only surfaced when DEBUG is on.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
}

func (e *Error) Error() string { return e.Message }

// Validation flags malformed or missing user input (422).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: msg}
}

// BadRequest flags a request the dispatcher cannot route (400).
func BadRequest(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Upload flags a rejected file upload; status is 400, 415 or 500
// depending on the failure.
func Upload(status int, msg string) *Error {
	return &Error{Kind: KindUpload, Status: status, Message: msg}
}

// Auth flags a missing login (401) or a bad anti-forgery token (403).
func Auth(status int, msg string) *Error {
	return &Error{Kind: KindAuth, Status: status, Message: msg}
}

// NotFound flags a reference to a row that no longer exists (404).
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Persistence wraps a store failure. The user-facing message stays generic;
// the underlying error is kept in Detail for debug responses and logs.
func Persistence(err error) *Error {
	return &Error{
		Kind:    KindPersistence,
		Status:  http.StatusInternalServerError,
		Message: "Erreur base de données.",
		Detail:  err.Error(),
	}
}

// Envelope is the response body shape used by every action:
// {success:true, data|message} on success, {success:false, message, details?}
// on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// OK wraps a data payload in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a user-facing confirmation in a success envelope.
func OKMessage(msg string) Envelope {
	return Envelope{Success: true, Message: msg}
}

// Fail builds the failure envelope. details is omitted when empty.
func Fail(msg, details string) Envelope {
	return Envelope{Success: false, Message: msg, Details: details}
}
