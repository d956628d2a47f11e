/*
Package source provides lookup of model and ensemble definitions by
their resource id. Definitions are returned as the raw JSON documents
the model and ensemble packages decode.
*/
package source

import "context"

/*
Source is an interface for stores from which definitions can be
retrieved by id.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Source interface {
	// Get takes an id and returns the definition stored with that id,
	// an error with cause ErrNotFound if there is none, or another
	// error if the store cannot be queried.
	Get(ctx context.Context, id string) ([]byte, error)
	// Close releases any resources held by the source.
	Close(ctx context.Context) error
}

// Error represents an error related with definition sources
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrNotFound is returned when a source holds no definition for an id
const ErrNotFound = Error("definition not found")
