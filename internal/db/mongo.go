package db

import (
	"context"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect abre la conexión a Mongo y devuelve el handle de la base.
// Los repositorios reciben *mongo.Database por constructor (nada de globals).
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Info().Str("db", cfg.MongoDB).Msg("mongo conectado")
	return client.Database(cfg.MongoDB), nil
}

// Disconnect cierra el cliente asociado a la base.
func Disconnect(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return database.Client().Disconnect(ctx)
}
