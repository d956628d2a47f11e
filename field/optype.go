package field

import "github.com/pkg/errors"

// Optype is the operation type of a field
type Optype int

const (
	// Numeric fields take real numbers
	Numeric Optype = iota + 1
	// Categorical fields take a value among a finite set of categories
	Categorical
	// Text fields take free text that is analyzed into terms
	Text
	// Items fields take a list of items joined by a separator
	Items
)

var optypeNames = map[Optype]string{
	Numeric:     "numeric",
	Categorical: "categorical",
	Text:        "text",
	Items:       "items",
}

// ParseOptype takes the name of an optype and returns the
// corresponding Optype or ErrUnknownOptype.
func ParseOptype(name string) (Optype, error) {
	for o, n := range optypeNames {
		if n == name {
			return o, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownOptype, "%q", name)
}

func (o Optype) String() string {
	if n, ok := optypeNames[o]; ok {
		return n
	}
	return "unknown"
}
