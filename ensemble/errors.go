package ensemble

// Error represents an error related with ensembles and vote combination
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNoVotes is returned when combining a MultiVote without votes
	ErrNoVotes = Error("no votes to combine")
	// ErrNoModels is returned when building an ensemble without models
	ErrNoModels = Error("ensemble has no models")
	// ErrUnknownMethod is returned when parsing an unknown combination
	// method
	ErrUnknownMethod = Error("unknown combination method")
	// ErrMissingWeight is returned when the combination method needs a
	// vote attribute (confidence, distribution) some vote lacks
	ErrMissingWeight = Error("votes lack the attribute the method weights them by")
	// ErrInvalidThreshold is returned when the threshold method is
	// requested without a category or with a threshold out of range
	ErrInvalidThreshold = Error("invalid threshold")
	// ErrMixedObjectives is returned when the models of an ensemble do not
	// predict the same kind of objective
	ErrMixedObjectives = Error("ensemble models predict different objectives")
	// ErrNoSource is returned when loading an ensemble that references
	// models by id without a source to retrieve them from
	ErrNoSource = Error("no source to retrieve models from")
)
