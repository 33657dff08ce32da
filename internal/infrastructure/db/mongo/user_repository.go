package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/legacyapp/user-service/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userClientDocument struct {
	ID   int    `bson:"id"`
	Name string `bson:"name"`
	Type string `bson:"type"`
}

type userDocument struct {
	ID             string             `bson:"_id"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	EmailAddress   string             `bson:"email_address"`
	DateOfBirth    time.Time          `bson:"date_of_birth"`
	Client         userClientDocument `bson:"client"`
	HasCreditLimit bool               `bson:"has_credit_limit"`
	CreditLimit    int                `bson:"credit_limit,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

// AddUser inserts a registered user. A duplicate email address maps to
// domain.ErrUserExists.
func (r *UserRepository) AddUser(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		EmailAddress:   u.EmailAddress,
		DateOfBirth:    u.DateOfBirth.UTC(),
		Client:         userClientDocument{ID: u.Client.ID, Name: u.Client.Name, Type: u.Client.Type.String()},
		HasCreditLimit: u.HasCreditLimit,
		CreatedAt:      u.CreatedAt.UTC(),
	}
	if u.HasCreditLimit {
		doc.CreditLimit = u.CreditLimit
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID retrieves a registered user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	clientType, _ := domain.ParseClientType(doc.Client.Type)
	return &domain.User{
		ID:             doc.ID,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		EmailAddress:   doc.EmailAddress,
		DateOfBirth:    doc.DateOfBirth.UTC(),
		Client:         domain.Client{ID: doc.Client.ID, Name: doc.Client.Name, Type: clientType},
		HasCreditLimit: doc.HasCreditLimit,
		CreditLimit:    doc.CreditLimit,
		CreatedAt:      doc.CreatedAt.UTC(),
	}, nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email_address", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client.id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
