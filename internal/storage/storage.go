// Package storage opens the note and profile stores for the configured
// backend.
package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/parthasastry/notes-app/internal/config"
	"github.com/parthasastry/notes-app/internal/db"
	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/profile"
	"github.com/parthasastry/notes-app/internal/storage/dynamostore"
	"github.com/parthasastry/notes-app/internal/storage/memstore"
	"github.com/parthasastry/notes-app/internal/storage/pgstore"
	"github.com/parthasastry/notes-app/internal/storage/redisstore"
)

type Backend struct {
	Notes    note.Store
	Profiles profile.Store

	// Close releases connections. It is never nil.
	Close func() error
}

func nop() error { return nil }

func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (Backend, error) {
	log = log.With().Str("store", cfg.Store).Logger()

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return Backend{Notes: memstore.NewNotes(), Profiles: memstore.NewProfiles(), Close: nop}, nil

	case config.StorePostgres:
		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return Backend{}, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return Backend{}, fmt.Errorf("postgres pool: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return Backend{}, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info().Msg("connected to postgres")
		return Backend{
			Notes:    &pgstore.Notes{DB: gdb},
			Profiles: &pgstore.Profiles{DB: gdb},
			Close:    sqlDB.Close,
		}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return Backend{}, fmt.Errorf("ping redis: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
		return Backend{
			Notes:    redisstore.NewNotes(rdb, cfg.RedisPrefix),
			Profiles: redisstore.NewProfiles(rdb, cfg.RedisPrefix),
			Close:    rdb.Close,
		}, nil

	case config.StoreDynamoDB:
		client, err := DynamoDB(ctx, cfg)
		if err != nil {
			return Backend{}, err
		}
		log.Info().Str("notes_table", cfg.TableNotes).Str("users_table", cfg.TableUsers).Msg("using dynamodb")
		return Backend{
			Notes:    dynamostore.NewNotes(client, cfg.TableNotes),
			Profiles: dynamostore.NewProfiles(client, cfg.TableUsers),
			Close:    nop,
		}, nil
	}
	return Backend{}, fmt.Errorf("unknown store %q", cfg.Store)
}

// DynamoDB builds a client from the default AWS credential chain. A
// configured endpoint points it at a local DynamoDB.
func DynamoDB(ctx context.Context, cfg config.Config) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

// Migrate prepares the schema for backends that have one.
func Migrate(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	switch cfg.Store {
	case config.StorePostgres:
		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := db.AutoMigrateAndIndexes(gdb.WithContext(ctx)); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	case config.StoreDynamoDB:
		client, err := DynamoDB(ctx, cfg)
		if err != nil {
			return err
		}
		if err := dynamostore.EnsureTables(ctx, client, cfg.TableNotes, cfg.TableUsers); err != nil {
			return fmt.Errorf("ensure tables: %w", err)
		}
	default:
		log.Info().Str("store", cfg.Store).Msg("nothing to migrate")
		return nil
	}
	log.Info().Str("store", cfg.Store).Msg("migrated")
	return nil
}
