package container

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/config"
	"github.com/oksasatya/go-link-saver/internal/infrastructure/postgres"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

// Database is a pgx pool as the rest of the app sees it. *pgxpool.Pool
// satisfies it.
type Database interface {
	postgres.DB
	Ping(ctx context.Context) error
}

// Container holds the process-wide components built once in main and
// handed to the router. ES and Rabbit are nil when not configured.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     Database
	JWT    *helpers.JWTManager
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher
}
