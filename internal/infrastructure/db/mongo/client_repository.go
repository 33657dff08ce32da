package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/legacyapp/user-service/internal/core/domain"
)

const collectionClients = "clients"

var replaceUpsert = options.Replace().SetUpsert(true)

// ClientRepository implements ports.ClientRepository using MongoDB.
type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type clientDocument struct {
	ID   int    `bson:"_id"`
	Name string `bson:"name"`
	Type string `bson:"type"`
}

// GetByID retrieves a client by its numeric id.
func (r *ClientRepository) GetByID(ctx context.Context, id int) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}

	// An unrecognised tag is kept as the zero ClientType so the registration
	// flow rejects it instead of failing the lookup.
	clientType, _ := domain.ParseClientType(doc.Type)

	return &domain.Client{
		ID:   doc.ID,
		Name: doc.Name,
		Type: clientType,
	}, nil
}

// Upsert stores or replaces a client keyed by its id.
func (r *ClientRepository) Upsert(ctx context.Context, c domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := c.Type.MarshalText()
	if err != nil {
		return err
	}

	doc := clientDocument{ID: c.ID, Name: c.Name, Type: string(tag)}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, doc, replaceUpsert)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}
