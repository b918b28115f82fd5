package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/Alp4ka/keysetpager"
	"github.com/Alp4ka/keysetpager/backend/memory"
	"github.com/Alp4ka/keysetpager/backend/mongobackend"
	"github.com/Alp4ka/keysetpager/backend/sqlbackend"
	"github.com/Alp4ka/keysetpager/internal/config"
)

// Open connects to the configured database, prepares the orders table or
// collection and returns a Store on top of it.
func Open(ctx context.Context, cfg *config.Database, logger *zap.Logger) (Store, error) {
	logger = logger.With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQL(ctx, "sqlite", cfg.DSN, sqlbackend.Question, _sqliteSchema, logger)
	case config.DriverPGX:
		return openSQL(ctx, "pgx", cfg.DSN, sqlbackend.Dollar, _postgresSchema, logger)
	case config.DriverPostgres:
		return openGORM(postgres.Open(cfg.DSN), logger)
	case config.DriverMySQL:
		return openGORM(mysql.Open(cfg.DSN), logger)
	case config.DriverMongoDB:
		return openMongo(ctx, cfg.DSN, cfg.Name, logger)
	case config.DriverMemory:
		return NewMemory(logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
	}
}

// NewMemory returns an empty in-memory Store.
func NewMemory(logger *zap.Logger) Store {
	s := newSchema(ColumnID)
	backend := memory.New(s.fields)

	insert := func(_ context.Context, orders ...Order) error {
		backend.Insert(orders...)
		return nil
	}

	return newStore[memory.Predicate[Order]](s, backend, insert, nil, logger)
}

var _sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		reference TEXT NOT NULL,
		customer TEXT NOT NULL,
		status TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_id ON orders (created_at DESC, id)`,
}

var _postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY,
		reference VARCHAR(36) NOT NULL,
		customer VARCHAR(128) NOT NULL,
		status VARCHAR(32) NOT NULL,
		amount_cents BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_id ON orders (created_at DESC, id)`,
}

var _orderTable = sqlbackend.Table[Order]{
	Name:    "orders",
	Columns: []string{ColumnID, "reference", ColumnCustomer, ColumnStatus, ColumnAmountCents, ColumnCreatedAt},
	Scan: func(rows *sql.Rows) (Order, error) {
		var o Order
		err := rows.Scan(&o.ID, &o.Reference, &o.Customer, &o.Status, &o.AmountCents, &o.CreatedAt)
		return o, err
	},
}

func openSQL(ctx context.Context, driver, dsn string, placeholder sqlbackend.Placeholder, ddl []string, logger *zap.Logger) (Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	backend := sqlbackend.New(db, _orderTable, sqlbackend.WithPlaceholder(placeholder))
	insert := func(ctx context.Context, orders ...Order) error {
		return insertSQL(ctx, db, backend, orders)
	}

	logger.Info("database ready")

	return newStore[sqlbackend.Predicate](newSchema(ColumnID), backend, insert, db.Close, logger), nil
}

func insertSQL(ctx context.Context, db *sql.DB, backend *sqlbackend.Backend[Order], orders []Order) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query := backend.Rebind(`INSERT INTO orders (id, reference, customer, status, amount_cents, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	for _, o := range orders {
		if _, err = tx.ExecContext(ctx, query, o.ID, o.Reference, o.Customer, o.Status, o.AmountCents, o.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert order %d: %w", o.ID, err)
		}
	}

	return tx.Commit()
}

func openGORM(dialector gorm.Dialector, logger *zap.Logger) (Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialector.Name(), err)
	}

	if err := db.AutoMigrate(&Order{}); err != nil {
		return nil, fmt.Errorf("failed to migrate orders: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	insert := func(ctx context.Context, orders ...Order) error {
		return db.WithContext(ctx).Create(&orders).Error
	}

	logger.Info("database ready")

	backend := keysetpager.NewGORMBackend[Order](db.Model(&Order{}))

	return newStore[clause.Expression](newSchema(ColumnID), backend, insert, sqlDB.Close, logger), nil
}

func openMongo(ctx context.Context, uri, dbName string, logger *zap.Logger) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongodb: %w", err)
	}

	coll := client.Database(dbName).Collection("orders")
	insert := func(ctx context.Context, orders ...Order) error {
		docs := make([]any, 0, len(orders))
		for _, o := range orders {
			o.CreatedAt = o.CreatedAt.UTC()
			docs = append(docs, o)
		}

		_, err := coll.InsertMany(ctx, docs)
		return err
	}

	closeFn := func() error {
		return client.Disconnect(context.Background())
	}

	logger.Info("database ready", zap.String("database", dbName))

	return newStore[bson.D](newSchema(ColumnMongoID), mongobackend.New[Order](coll), insert, closeFn, logger), nil
}
