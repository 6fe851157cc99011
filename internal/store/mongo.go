package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/tradingapp/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	databaseName   = "tradingapp"
	collectionName = "trades"
)

// tradeDocument is the BSON shape persisted to the trades collection.
// The trade id doubles as the document key.
type tradeDocument struct {
	ID         string               `bson:"_id"`
	Symbol     string               `bson:"symbol"`
	Quantity   int64                `bson:"quantity"`
	Price      primitive.Decimal128 `bson:"price"`
	TraderName string               `bson:"traderName"`
	Timestamp  time.Time            `bson:"timestamp"`
}

// MongoTradeStore persists trades as documents in a MongoDB collection.
type MongoTradeStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoTradeStore connects to the document store at uri and pings it
// before returning. The caller owns the connection and must Close it on
// shutdown.
func NewMongoTradeStore(ctx context.Context, uri string, connectTimeout time.Duration) (*MongoTradeStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return &MongoTradeStore{
		client: client,
		coll:   client.Database(databaseName).Collection(collectionName),
	}, nil
}

// Insert stores a new trade document keyed by its id.
func (s *MongoTradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	doc, err := toDocument(t)
	if err != nil {
		return err
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTradeAlreadyExists
		}
		return fmt.Errorf("insert trade %s: %w", t.ID, err)
	}
	return nil
}

// FindByID looks up a trade document by id. It returns
// domain.ErrTradeNotFound when no document matches.
func (s *MongoTradeStore) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	var doc tradeDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trade %s: %w", id, err)
	}
	return fromDocument(&doc)
}

// Close disconnects the underlying client.
func (s *MongoTradeStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocument(t *domain.Trade) (*tradeDocument, error) {
	price, err := primitive.ParseDecimal128(t.Price.String())
	if err != nil {
		return nil, fmt.Errorf("encode price %s: %w", t.Price, err)
	}
	return &tradeDocument{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Quantity:   t.Quantity,
		Price:      price,
		TraderName: t.TraderName,
		Timestamp:  t.Timestamp.UTC(),
	}, nil
}

func fromDocument(doc *tradeDocument) (*domain.Trade, error) {
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("decode price %s: %w", doc.Price, err)
	}
	return &domain.Trade{
		ID:         doc.ID,
		Symbol:     doc.Symbol,
		Quantity:   doc.Quantity,
		Price:      price,
		TraderName: doc.TraderName,
		Timestamp:  doc.Timestamp.UTC(),
	}, nil
}
