package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

type recipeMongoRepository struct {
	collection *mongo.Collection
}

func NewRecipeMongoRepository(db *mongo.Database) RecipeRepository {
	return &recipeMongoRepository{
		collection: db.Collection("recipes"),
	}
}

func (m recipeMongoRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	now := time.Now()
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, recipe); err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	return nil
}

func (m recipeMongoRepository) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	var recipe domain.Recipe

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return &recipe, nil
}

func (m recipeMongoRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var recipes []domain.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	return recipes, nil
}

func (m recipeMongoRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":        recipe.Name,
		"description": recipe.Description,
		"image":       recipe.Image,
		"servings":    recipe.Servings,
		"ingredients": recipe.Ingredients,
		"updated_at":  recipe.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": recipe.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (m recipeMongoRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrRecipeNotFound
	}

	return nil
}
