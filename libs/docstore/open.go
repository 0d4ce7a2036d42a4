package docstore

import (
	"context"
	"fmt"

	"github.com/md-rashed-zaman/fuelstation/libs/db"
	"go.mongodb.org/mongo-driver/mongo"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
	DriverMemory   Driver = "memory"
)

func ParseDriver(raw string) (Driver, error) {
	switch d := Driver(raw); d {
	case DriverPostgres, DriverMongo, DriverMemory:
		return d, nil
	case "":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unknown store driver %q", raw)
	}
}

// Backend is an opened storage engine from which collections are derived.
type Backend struct {
	Driver Driver
	Pool   *db.Pool
	Mongo  *mongo.Database
}

// Open returns the collection described by schema on the configured backend.
func Open[T any](ctx context.Context, b Backend, schema Schema) (Collection[T], error) {
	switch b.Driver {
	case DriverPostgres:
		if b.Pool == nil {
			return nil, fmt.Errorf("docstore: postgres backend without pool")
		}
		return NewPostgres[T](b.Pool, schema)
	case DriverMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("docstore: mongo backend without database")
		}
		return NewMongo[T](ctx, b.Mongo, schema)
	case DriverMemory:
		return NewMemory[T](schema)
	default:
		return nil, fmt.Errorf("docstore: unsupported driver %q", b.Driver)
	}
}

// ReadyCheck pings the backend.
func (b Backend) ReadyCheck() func(context.Context) error {
	return func(ctx context.Context) error {
		switch b.Driver {
		case DriverPostgres:
			return db.ReadyCheck(b.Pool)(ctx)
		case DriverMongo:
			if b.Mongo == nil {
				return fmt.Errorf("mongo not configured")
			}
			return b.Mongo.Client().Ping(ctx, nil)
		default:
			return nil
		}
	}
}
