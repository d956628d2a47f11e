/*
Package mongosource provides an implementation of source.Source that
reads definitions from a MongoDB collection, where each definition is
stored in a document with the resource id as _id and the definition as
a JSON string under the definition key.
*/
package mongosource

import (
	"context"

	"github.com/pbanos/grove/source"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// DefaultCollection is the collection definitions are read from unless
// another one is given to Open
const DefaultCollection = "definitions"

type document struct {
	ID         string `bson:"_id"`
	Definition string `bson:"definition"`
}

type mongoSource struct {
	session    *mgo.Session
	collection string
}

/*
Open takes a MongoDB database session and the name of a collection and
returns a source.Source that reads from that collection on the default
database of the session. An empty collection name selects
DefaultCollection.
*/
func Open(ctx context.Context, session *mgo.Session, collection string) (source.Source, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if err := session.Ping(); err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	return &mongoSource{session, collection}, nil
}

func (ms *mongoSource) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session := ms.session.Copy()
	defer session.Close()
	doc := &document{}
	err := session.DB("").C(ms.collection).Find(bson.M{"_id": id}).One(doc)
	if err == mgo.ErrNotFound {
		return nil, errors.Wrapf(source.ErrNotFound, "%q in collection %s", id, ms.collection)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving definition %q from MongoDB", id)
	}
	return []byte(doc.Definition), nil
}

// Close closes the MongoDB session
func (ms *mongoSource) Close(ctx context.Context) error {
	ms.session.Close()
	return nil
}
