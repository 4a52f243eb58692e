package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

type categoryMongoRepository struct {
	collection *mongo.Collection
}

func NewCategoryMongoRepository(db *mongo.Database) CategoryRepository {
	return &categoryMongoRepository{
		collection: db.Collection("categories"),
	}
}

func (m categoryMongoRepository) List(ctx context.Context) ([]domain.Category, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}
