package main

import (
	"context"
	"os"
	"strings"

	"github.com/pbanos/grove/ensemble"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/source"
	"github.com/pbanos/grove/source/mongosource"
	"github.com/pbanos/grove/source/redissource"
	"github.com/pbanos/grove/source/sqlsource"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

// source returns the source configured with the source flag, or nil if
// there is none
func (rc *rootCmdConfig) source(ctx context.Context) (source.Source, error) {
	location := rc.v.GetString("source")
	table := rc.v.GetString("source-table")
	var s source.Source
	var err error
	switch {
	case location == "":
		return nil, nil
	case strings.HasPrefix(location, "redis://"):
		log.Debug().Str("address", location).Msg("using redis source")
		s = redissource.New(redis.NewClient(&redis.Options{
			Addr:     strings.TrimPrefix(location, "redis://"),
			Password: rc.v.GetString("redis-password"),
			DB:       rc.v.GetInt("redis-db"),
		}), rc.v.GetString("redis-prefix"))
	case strings.HasPrefix(location, "mongodb://"):
		log.Debug().Msg("using MongoDB source")
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to MongoDB")
		}
		if s, err = mongosource.Open(ctx, session, table); err != nil {
			session.Close()
			return nil, err
		}
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		log.Debug().Msg("using PostgreSQL source")
		s, err = sqlsource.NewPostgres(location, table)
	case strings.HasSuffix(location, ".db"):
		log.Debug().Str("path", location).Msg("using SQLite3 source")
		s, err = sqlsource.NewSQLite3(location, table)
	default:
		log.Debug().Str("path", location).Msg("using directory source")
		s = source.NewDirectory(location)
	}
	if err != nil {
		return nil, err
	}
	if ttl := rc.v.GetDuration("cache-ttl"); ttl > 0 {
		s = source.Cached(s, source.WithTTL(ttl))
	}
	return s, nil
}

// definition returns the contents of the file at ref if there is one,
// or the definition with id ref in the source otherwise
func definition(ctx context.Context, src source.Source, ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading %s", ref)
	}
	if src == nil {
		return nil, errors.Errorf("%s is not a file and no source was configured", ref)
	}
	return src.Get(ctx, ref)
}

func loadModel(ctx context.Context, src source.Source, ref string) (*model.Model, error) {
	data, err := definition(ctx, src, ref)
	if err != nil {
		return nil, err
	}
	return model.Decode(data)
}

func loadEnsemble(ctx context.Context, src source.Source, ref string, opts ...ensemble.Option) (*ensemble.Ensemble, error) {
	data, err := definition(ctx, src, ref)
	if err != nil {
		return nil, err
	}
	return ensemble.Decode(ctx, data, src, opts...)
}
