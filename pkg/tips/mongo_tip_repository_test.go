package tips

import (
	"FoodSaver-Backend/entities"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type fakeTipCollection struct {
	docs     []entities.Tip
	count    int64
	inserted any
	filter   any
	findErr  error
}

func (f *fakeTipCollection) CountDocuments(context.Context, any, ...options.Lister[options.CountOptions]) (int64, error) {
	return f.count, nil
}

func (f *fakeTipCollection) InsertMany(_ context.Context, documents any, _ ...options.Lister[options.InsertManyOptions]) (*mongo.InsertManyResult, error) {
	f.inserted = documents
	return &mongo.InsertManyResult{}, nil
}

func (f *fakeTipCollection) Find(_ context.Context, filter any, _ ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	f.filter = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	docs := make([]any, 0, len(f.docs))
	for _, d := range f.docs {
		docs = append(docs, d)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeTipCollection) Indexes() mongo.IndexView {
	return mongo.IndexView{}
}

func TestTipsFilterMatchesWholeCategoryIgnoringCase(t *testing.T) {
	assert.Empty(t, tipsFilter(""))

	category := tipsFilter("Storage")["category"].(bson.M)
	assert.Equal(t, "i", category["$options"])

	pattern := regexp.MustCompile("(?i)" + category["$regex"].(string))
	assert.True(t, pattern.MatchString("storage"))
	assert.True(t, pattern.MatchString("STORAGE"))
	assert.False(t, pattern.MatchString("cold storage"))
	assert.False(t, pattern.MatchString("storage tips"))
}

func TestTipsFilterQuotesRegexCharacters(t *testing.T) {
	category := tipsFilter("a.*")["category"].(bson.M)
	assert.Equal(t, `^a\.\*$`, category["$regex"])
}

func TestMongoGetTipsDecodesDocuments(t *testing.T) {
	coll := &fakeTipCollection{docs: DefaultTips}
	repo := &MongoTipRepository{coll: coll}

	tips, err := repo.GetTips(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, tips, len(DefaultTips))
	assert.Equal(t, DefaultTips[0].Title, tips[0].Title)
	assert.Equal(t, bson.M{}, coll.filter)
}

func TestMongoGetTipsPassesCategoryFilter(t *testing.T) {
	coll := &fakeTipCollection{}
	repo := &MongoTipRepository{coll: coll}

	tips, err := repo.GetTips(context.Background(), "storage")
	require.NoError(t, err)
	assert.Empty(t, tips)
	assert.Equal(t, tipsFilter("storage"), coll.filter)
}

func TestMongoGetTipsFindError(t *testing.T) {
	repo := &MongoTipRepository{coll: &fakeTipCollection{findErr: errors.New("no primary")}}

	_, err := repo.GetTips(context.Background(), "")
	assert.EqualError(t, err, "no primary")
}

func TestMongoEnsureSeeded(t *testing.T) {
	empty := &fakeTipCollection{}
	require.NoError(t, (&MongoTipRepository{coll: empty}).EnsureSeeded(context.Background(), DefaultTips))
	assert.Equal(t, DefaultTips, empty.inserted)

	seeded := &fakeTipCollection{count: 3}
	require.NoError(t, (&MongoTipRepository{coll: seeded}).EnsureSeeded(context.Background(), DefaultTips))
	assert.Nil(t, seeded.inserted)
}
