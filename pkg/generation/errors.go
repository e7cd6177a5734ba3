package generation

import "errors"

// Kind classifies where a submission stopped.
type Kind int

const (
	// KindConfig means the backend has no usable client; nothing was sent.
	KindConfig Kind = iota + 1
	// KindValidation means the form input was rejected; nothing was sent.
	KindValidation
	// KindRemote covers network, vendor and response format failures.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Err  error
	// Hint is shown instead of Err for configuration problems.
	Hint string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return 0
}
