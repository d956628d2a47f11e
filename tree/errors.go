package tree

// Error represents an error related with trees and their predictions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrMixedDistribution is returned when a distribution holds or would
	// hold both numeric and categorical values.
	ErrMixedDistribution = Error("distribution mixes numeric and categorical values")
	// ErrEmptyTree is returned when building a tree without nodes
	ErrEmptyTree = Error("tree has no nodes")
	// ErrMalformedTree is returned when the nodes of a tree do not form
	// a strict tree rooted at the first node.
	ErrMalformedTree = Error("malformed tree")
	// ErrUnknownStrategy is returned when parsing an unknown missing
	// value strategy name.
	ErrUnknownStrategy = Error("unknown missing strategy")
)

// ErrInconsistentCounts is returned by Validate when the instance counts
// of a node do not add up with those of its children or distribution.
const ErrInconsistentCounts = Error("inconsistent node instance counts")
