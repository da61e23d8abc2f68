package eventwrap

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidEmitter = errors.New("emitter must be a non-nil Emitter")
	ErrNilListener    = errors.New("listener must be a non-nil Listener")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// ErrConfigField reports a single rejected configuration value.
type ErrConfigField struct {
	field string
	value any
	err   error
}

func (e ErrConfigField) Error() string {
	return fmt.Sprintf("%s: %s=%v", e.err, e.field, e.value)
}

func (e ErrConfigField) Unwrap() error { return e.err }

func newErrConfigField(field string, value any, reason string) error {
	return ErrConfigField{
		field: field,
		value: value,
		err:   errors.Wrap(ErrInvalidConfig, reason),
	}
}
