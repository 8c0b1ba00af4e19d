package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"media-repurposer-go/internal/config"
)

var (
	mongoOnce sync.Once
	mongoCli  *mongo.Client
	mongoErr  error
)

func mongoDBName() string {
	v := strings.TrimSpace(config.AppConfig.MongoDB)
	if v == "" {
		return "media_repurposer"
	}
	return v
}

func mongoClient() (*mongo.Client, error) {
	if backendKind() != backendMongoDB {
		return nil, errors.New("mongodb backend disabled")
	}
	mongoOnce.Do(func() {
		uri := strings.TrimSpace(config.AppConfig.MongoURI)
		if uri == "" {
			mongoErr = errors.New("MONGO_URI is empty")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			mongoErr = err
			return
		}
		if err := cli.Ping(ctx, readpref.Primary()); err != nil {
			_ = cli.Disconnect(ctx)
			mongoErr = err
			return
		}
		if err := initMongoSchema(ctx, cli); err != nil {
			_ = cli.Disconnect(ctx)
			mongoErr = err
			return
		}
		mongoCli = cli
	})
	return mongoCli, mongoErr
}

func initMongoSchema(ctx context.Context, cli *mongo.Client) error {
	coll := cli.Database(mongoDBName()).Collection("resolutions")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "platform", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_platform_created"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo create indexes resolutions: %w", err)
	}
	return nil
}

func mongoInsertRecord(ctx context.Context, rec Record) error {
	cli, err := mongoClient()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	coll := cli.Database(mongoDBName()).Collection("resolutions")
	_, err = coll.InsertOne(ctx, rec)
	return err
}
