package tips

import (
	"FoodSaver-Backend/entities"
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// tipCollection is the part of *mongo.Collection the repository uses.
type tipCollection interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	InsertMany(ctx context.Context, documents any, opts ...options.Lister[options.InsertManyOptions]) (*mongo.InsertManyResult, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	Indexes() mongo.IndexView
}

type MongoTipRepository struct {
	coll tipCollection
}

func NewMongoTipRepository(coll *mongo.Collection) *MongoTipRepository {
	return &MongoTipRepository{coll: coll}
}

// EnsureSeeded inserts the given tips when the collection is empty.
func (r *MongoTipRepository) EnsureSeeded(ctx context.Context, seed []entities.Tip) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count tips: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	if _, err := r.coll.InsertMany(ctx, seed); err != nil {
		return fmt.Errorf("seed tips: %w", err)
	}
	return nil
}

// CreateIndexes adds the index used by the category filter and ordering.
func (r *MongoTipRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "position", Value: 1}},
	})
	return err
}

func (r *MongoTipRepository) GetTips(ctx context.Context, category string) ([]entities.Tip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, tipsFilter(category), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tips := make([]entities.Tip, 0)
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// tipsFilter matches the whole category name, ignoring case.
func tipsFilter(category string) bson.M {
	filter := bson.M{}
	if category != "" {
		filter["category"] = bson.M{"$regex": "^" + regexp.QuoteMeta(category) + "$", "$options": "i"}
	}
	return filter
}
