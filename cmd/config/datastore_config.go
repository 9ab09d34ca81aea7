package config

import (
	"FoodSaver-Backend/internal/utils"
	"FoodSaver-Backend/pkg/session"
	"FoodSaver-Backend/pkg/tips"
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	tipsCollection = "tips"
)

// NewSessionStore uses Redis when REDIS_ADDR is set so revocations survive
// restarts and are shared between instances. Otherwise sessions live in
// process memory.
func NewSessionStore(ctx context.Context) (session.Store, func(), error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		log.Warn("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       redisDB(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Infof("session store connected to redis at %s", addr)
	return session.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			log.Warnf("close redis: %v", err)
		}
	}, nil
}

func redisDB() int {
	db, err := strconv.Atoi(utils.GetConfig("REDIS_DB"))
	if err != nil {
		return 0
	}
	return db
}

// NewTipRepository reads tips from MongoDB when MONGO_URI is set, seeding
// the collection with the built-in feed on first start.
func NewTipRepository(ctx context.Context) (tips.TipRepository, func(), error) {
	uri := utils.GetConfig("MONGO_URI")
	if uri == "" {
		return tips.NewStaticTipRepository(tips.DefaultTips), func() {}, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warnf("close mongo: %v", err)
		}
	}

	setupCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	repo := tips.NewMongoTipRepository(client.Database(utils.GetConfig("MONGO_DATABASE")).Collection(tipsCollection))
	if err := repo.CreateIndexes(setupCtx); err != nil {
		disconnect()
		return nil, nil, err
	}
	if err := repo.EnsureSeeded(setupCtx, tips.DefaultTips); err != nil {
		disconnect()
		return nil, nil, err
	}

	log.Info("tips repository connected to mongodb")
	return repo, disconnect, nil
}
