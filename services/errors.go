package services

import "errors"

// Kind classifies service failures so controllers can map them to HTTP
// statuses without parsing messages. Kinds are part of the API contract and
// must stay stable.
type Kind string

const (
	KindNotFound            Kind = "NotFound"
	KindInvalidOperation    Kind = "InvalidOperation"
	KindInvalidQuantity     Kind = "InvalidQuantity"
	KindInsufficientStock   Kind = "InsufficientStock"
	KindCreditLimitExceeded Kind = "CreditLimitExceeded"
	KindExceedsAmountDue    Kind = "ExceedsAmountDue"
	KindDuplicateName       Kind = "DuplicateName"
	KindAlreadyReversed     Kind = "AlreadyReversed"
	KindValidationError     Kind = "ValidationError"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// AsServiceError unwraps err into *Error if it is one.
func AsServiceError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
