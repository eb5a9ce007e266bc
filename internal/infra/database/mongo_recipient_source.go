package database

import (
	"context"
	"fmt"

	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecipientSource reads one identifier field from every document of a collection.
// There is no filter and no pagination: the whole collection is materialized.
type MongoRecipientSource struct {
	uri        string
	database   string
	collection string
	idField    string
	logger     *logrus.Entry
}

func NewMongoRecipientSource(uri, database, collection, idField string, logger *logrus.Entry) *MongoRecipientSource {
	return &MongoRecipientSource{
		uri:        uri,
		database:   database,
		collection: collection,
		idField:    idField,
		logger: logger.WithFields(logrus.Fields{
			"source":     "mongodb",
			"database":   database,
			"collection": collection,
		}),
	}
}

func (s *MongoRecipientSource) Resolve(ctx context.Context) ([]recipient.ID, error) {
	client, err := NewMongoConnection(ctx, s.uri)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			s.logger.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()

	opts := options.Find().SetProjection(s.projection())
	cur, err := client.Database(s.database).Collection(s.collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying collection %s: %w", s.collection, err)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error reading documents from %s: %w", s.collection, err)
	}

	ids := idsFromDocuments(docs, s.idField, s.logger)
	s.logger.WithFields(logrus.Fields{"documents": len(docs), "valid": len(ids)}).Info("Recipient IDs loaded from MongoDB")
	return ids, nil
}

func (s *MongoRecipientSource) projection() bson.D {
	return bson.D{{Key: s.idField, Value: 1}, {Key: "_id", Value: 0}}
}

func idsFromDocuments(docs []bson.M, field string, logger *logrus.Entry) []recipient.ID {
	values := make([]any, 0, len(docs))
	for _, doc := range docs {
		values = append(values, doc[field])
	}
	return recipient.CoerceAll(values, logger)
}
