package field

// Error is the type of the errors returned by this package
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrUnknownOptype is returned when a field declares an optype
	// other than numeric, categorical, text or items.
	ErrUnknownOptype = Error("unknown field optype")
	// ErrUnknownOperator is returned when a predicate declares an
	// unrecognized operator.
	ErrUnknownOperator = Error("unknown predicate operator")
	// ErrUnsupportedValue is returned when a JSON value cannot be
	// represented as a Value.
	ErrUnsupportedValue = Error("unsupported value type")
	// ErrTypeMismatch is returned when a value cannot be evaluated
	// against a field or predicate because of its type.
	ErrTypeMismatch = Error("value type does not match field")
	// ErrTermOnNonTextField is returned when a predicate carries a
	// term but its field is neither a text nor an items field.
	ErrTermOnNonTextField = Error("term predicate on a field that is neither text nor items")
)
