package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(map[string][]byte{"model/1": []byte(`{"a":1}`)})
	d, err := m.Get(ctx, "model/1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(d))

	_, err = m.Get(ctx, "model/2")
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	require.NoError(t, m.Put(ctx, "model/2", []byte(`{}`)))
	d, err = m.Get(ctx, "model/2")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(d))
	assert.NoError(t, m.Close(ctx))
}

func TestMemoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory(nil)
	assert.Equal(t, context.Canceled, m.Put(ctx, "model/1", nil))
	_, err := m.Get(ctx, "model/1")
	assert.Equal(t, context.Canceled, err)
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model_1.json"), []byte(`{"id":1}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte(`{"id":2}`), 0600))
	d := NewDirectory(dir)

	data, err := d.Get(ctx, "model/1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(data))

	data, err = d.Get(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, `{"id":2}`, string(data))

	for _, id := range []string{"model/3", "", "../model_1.json"} {
		_, err = d.Get(ctx, id)
		assert.Equal(t, ErrNotFound, errors.Cause(err), id)
	}
}

type countingSource struct {
	Source
	gets int
}

func (c *countingSource) Get(ctx context.Context, id string) ([]byte, error) {
	c.gets++
	return c.Source.Get(ctx, id)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	counting := &countingSource{Source: NewMemory(map[string][]byte{"model/1": []byte(`{}`)})}
	c := Cached(counting, WithTTL(time.Hour))

	for i := 0; i < 3; i++ {
		d, err := c.Get(ctx, "model/1")
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(d))
	}
	assert.Equal(t, 1, counting.gets)

	for i := 0; i < 2; i++ {
		_, err := c.Get(ctx, "model/2")
		assert.Equal(t, ErrNotFound, errors.Cause(err))
	}
	assert.Equal(t, 3, counting.gets)

	require.NoError(t, c.Close(ctx))
	_, err := c.Get(ctx, "model/1")
	require.NoError(t, err)
	assert.Equal(t, 4, counting.gets)
}
