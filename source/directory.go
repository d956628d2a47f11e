package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type directory struct {
	path string
}

/*
NewDirectory returns a Source reading definitions from the files in the
directory at path. The definition for an id like model/5f00 is read
from model_5f00.json, or from a file named exactly like the id if that
one does not exist.
*/
func NewDirectory(path string) Source {
	return &directory{path}
}

func (d *directory) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || strings.Contains(id, "..") {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	for _, name := range []string{strings.Replace(id, "/", "_", -1) + ".json", id} {
		data, err := os.ReadFile(filepath.Join(d.path, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "reading definition %q", id)
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "%q in %s", id, d.path)
}

func (d *directory) Close(ctx context.Context) error {
	return nil
}
