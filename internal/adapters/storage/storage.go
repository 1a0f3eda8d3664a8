package storage

import (
	"context"
	"fmt"

	"pets-mvc/internal/adapters/storage/dynamodb"
	"pets-mvc/internal/adapters/storage/memory"
	"pets-mvc/internal/adapters/storage/mongo"
	"pets-mvc/internal/adapters/storage/redis"
	"pets-mvc/internal/adapters/storage/sqlstore"
	"pets-mvc/internal/config"
	"pets-mvc/internal/domain/pets"
)

const (
	catsCollection = "cats"
	dogsCollection = "dogs"
)

// Backend son las dos colecciones más el cierre de la conexión subyacente.
type Backend struct {
	Driver string
	Cats   pets.CatCollection
	Dogs   pets.DogCollection

	close func(ctx context.Context) error
}

func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close(ctx)
}

func Memory() *Backend {
	return &Backend{
		Driver: config.DriverMemory,
		Cats:   memory.NewCats(),
		Dogs:   memory.NewDogs(),
	}
}

// Open conecta al store elegido en cfg.Driver y prepara índices/tablas.
func Open(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return Memory(), nil
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres, config.DriverSQLite:
		return openSQL(ctx, cfg)
	case config.DriverDynamoDB:
		return openDynamo(ctx, cfg)
	case config.DriverRedis:
		return openRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	client, db, err := mongo.Open(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("storage: connect mongo: %w", err)
	}

	cats := mongo.NewCollection[pets.Cat](db, catsCollection)
	dogs := mongo.NewCollection[pets.Dog](db, dogsCollection)
	for _, ensure := range []func(context.Context) error{cats.EnsureIndexes, dogs.EnsureIndexes} {
		if err := ensure(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return &Backend{
		Driver: cfg.Driver,
		Cats:   cats,
		Dogs:   dogs,
		close:  client.Disconnect,
	}, nil
}

func openSQL(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	d, err := sqlstore.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.Open(d, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", cfg.Driver, err)
	}

	cats := sqlstore.NewCollection[pets.Cat](db, d, catsCollection)
	dogs := sqlstore.NewCollection[pets.Dog](db, d, dogsCollection)
	for _, ensure := range []func(context.Context) error{cats.EnsureSchema, dogs.EnsureSchema} {
		if err := ensure(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Backend{
		Driver: cfg.Driver,
		Cats:   cats,
		Dogs:   dogs,
		close:  func(context.Context) error { return db.Close() },
	}, nil
}

func openDynamo(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	client, err := dynamodb.Connect(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("storage: connect dynamodb: %w", err)
	}

	catsTable := cfg.TablePrefix + "Cats"
	dogsTable := cfg.TablePrefix + "Dogs"
	for _, table := range []string{catsTable, dogsTable} {
		if err := dynamodb.EnsureTable(ctx, client, table); err != nil {
			return nil, err
		}
	}

	return &Backend{
		Driver: cfg.Driver,
		Cats:   dynamodb.NewCollection[pets.Cat](client, catsTable),
		Dogs:   dynamodb.NewCollection[pets.Dog](client, dogsTable),
	}, nil
}

func openRedis(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	client, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("storage: connect redis: %w", err)
	}

	return &Backend{
		Driver: cfg.Driver,
		Cats:   redis.NewCollection[pets.Cat](client, "pets:"+catsCollection),
		Dogs:   redis.NewCollection[pets.Dog](client, "pets:"+dogsCollection),
		close:  func(context.Context) error { return client.Close() },
	}, nil
}
