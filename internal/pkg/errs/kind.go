package errs

import "errors"

// Kind is the caller-facing classification of an error.
type Kind int

const (
	// KindInternal covers infrastructure failures and anything unclassified.
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindNoPriceAvailable
	KindConcurrentModification
	KindNumberingUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindInvalidState:
		return "InvalidState"
	case KindNoPriceAvailable:
		return "NoPriceAvailable"
	case KindConcurrentModification:
		return "ConcurrentModification"
	case KindNumberingUnavailable:
		return "NumberingUnavailable"
	default:
		return "Internal"
	}
}

// KindOf classifies err. A nil error has no meaningful kind and reports KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrConcurrentModification):
		return KindConcurrentModification
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrNoPriceAvailable):
		return KindNoPriceAvailable
	case errors.Is(err, ErrNumberingUnavailable):
		return KindNumberingUnavailable
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrVersionIsInvalid):
		return KindValidation
	default:
		return KindInternal
	}
}
