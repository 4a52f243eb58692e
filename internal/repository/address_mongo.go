package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

type addressMongoRepository struct {
	collection *mongo.Collection
}

func NewAddressMongoRepository(db *mongo.Database) AddressRepository {
	return &addressMongoRepository{
		collection: db.Collection("addresses"),
	}
}

func (m addressMongoRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	var address domain.Address

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return &address, nil
}
