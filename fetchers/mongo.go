package fetchers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/currency-swap"
)

type MongoFetcher struct {
	Collection *mongo.Collection
}

func (m MongoFetcher) Fetch(ctx context.Context) ([]currency.Price, error) {
	if m.Collection == nil {
		return nil, ErrNoCollection
	}

	cursor, err := m.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	prices := make([]currency.Price, 0)

	if err := cursor.All(ctx, &prices); err != nil {
		return nil, err
	}

	return prices, nil
}
