/*
Package redissource provides an implementation of source.Source that
reads definitions from a redis DB, where each definition is stored as a
string under the key <prefix>:<id>.
*/
package redissource

import (
	"context"
	"fmt"

	"github.com/pbanos/grove/source"
	"github.com/pkg/errors"
	redis "gopkg.in/redis.v5"
)

type redisSource struct {
	rc     *redis.Client
	prefix string
}

// New builds a source.Source backed by a redis DB
func New(rc *redis.Client, prefix string) source.Source {
	return &redisSource{rc, prefix}
}

func (rs *redisSource) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Bytes()
	if err == redis.Nil || (err == nil && len(data) == 0) {
		return nil, errors.Wrapf(source.ErrNotFound, "%q", rs.keyFor(id))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving definition %q from redis", id)
	}
	return data, nil
}

// Close closes the redis client
func (rs *redisSource) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisSource) keyFor(id string) string {
	if rs.prefix == "" {
		return id
	}
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
