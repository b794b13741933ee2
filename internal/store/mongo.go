package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
)

// MongoGateway is the Gateway backed by a MongoDB database.
type MongoGateway struct {
	db      *mongo.Database
	timeout time.Duration
	now     func() time.Time
}

// NewMongoGateway wraps db. Every store call is bounded by timeout.
func NewMongoGateway(db *mongo.Database, timeout time.Duration) *MongoGateway {
	return &MongoGateway{db: db, timeout: timeout, now: time.Now}
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

func (g *MongoGateway) Insert(ctx context.Context, coll Collection, record any) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", apperrors.NewStorageError("insert", coll.Name, err)
	}
	now := g.now().UTC()
	doc[KeyCreatedAt] = now
	doc[KeyUpdatedAt] = now

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.db.Collection(coll.Name).InsertOne(ctx, doc)
	if err != nil {
		return "", apperrors.NewStorageError("insert", coll.Name, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (g *MongoGateway) Query(ctx context.Context, coll Collection, filter Filter, out any) error {
	if err := filter.Validate(coll); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cursor, err := g.db.Collection(coll.Name).Find(ctx, filter.BSON())
	if err != nil {
		return apperrors.NewStorageError("query", coll.Name, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return apperrors.NewStorageError("query", coll.Name, err)
	}
	return nil
}

func (g *MongoGateway) ReplaceFields(ctx context.Context, coll Collection, id string, fields any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewStorageError("replace", coll.Name, fmt.Errorf("%w: %q", ErrInvalidID, id))
	}
	doc, err := toDocument(fields)
	if err != nil {
		return apperrors.NewStorageError("replace", coll.Name, err)
	}
	doc[KeyUpdatedAt] = g.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.db.Collection(coll.Name).UpdateOne(ctx, bson.M{KeyID: oid}, bson.M{"$set": doc})
	if err != nil {
		return apperrors.NewStorageError("replace", coll.Name, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewStorageError("replace", coll.Name, ErrNotFound)
	}
	return nil
}

func (g *MongoGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.db.Client().Ping(ctx, readpref.Primary())
}

func (g *MongoGateway) CollectionNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.db.ListCollectionNames(ctx, bson.D{})
}
