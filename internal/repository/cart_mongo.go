package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

type CartMongoRepository struct {
	collection *mongo.Collection
}

func NewCartMongoRepository(db *mongo.Database) *CartMongoRepository {
	return &CartMongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *CartMongoRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// AddItem inserts a new line or increments the quantity of an existing one.
// At most one line exists per (user, product) pair.
func (m *CartMongoRepository) AddItem(ctx context.Context, userID string, productID string, quantity int) error {
	now := time.Now()

	filter := bson.M{"user_id": userID}

	var existingCart domain.Cart
	err := m.collection.FindOne(ctx, filter).Decode(&existingCart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Cart doesn't exist, create it with the item
			cart := &domain.Cart{
				UserID: userID,
				Items: []domain.CartItem{{
					ProductID: productID,
					Quantity:  quantity,
					AddedAt:   now,
				}},
				CreatedAt: now,
				UpdatedAt: now,
			}

			if _, err = m.collection.InsertOne(ctx, cart); err != nil {
				return fmt.Errorf("failed to create cart with item: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check existing cart: %w", err)
	}

	itemExists := false
	for _, existingItem := range existingCart.Items {
		if existingItem.ProductID == productID {
			itemExists = true
			break
		}
	}

	if itemExists {
		update := bson.M{
			"$inc": bson.M{"items.$[elem].quantity": quantity},
			"$set": bson.M{
				"items.$[elem].added_at": now,
				"updated_at":             now,
			},
		}
		arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"elem.product_id": productID},
			},
		})

		if _, err = m.collection.UpdateOne(ctx, filter, update, arrayFilters); err != nil {
			return fmt.Errorf("failed to increment existing item: %w", err)
		}
	} else {
		update := bson.M{
			"$push": bson.M{"items": domain.CartItem{
				ProductID: productID,
				Quantity:  quantity,
				AddedAt:   now,
			}},
			"$set": bson.M{"updated_at": now},
		}

		if _, err = m.collection.UpdateOne(ctx, filter, update); err != nil {
			return fmt.Errorf("failed to add new item: %w", err)
		}
	}

	return nil
}

func (m *CartMongoRepository) SetItemQuantity(ctx context.Context, userID string, productID string, quantity int) error {
	if quantity <= 0 {
		return m.RemoveItem(ctx, userID, productID)
	}

	filter := bson.M{
		"user_id":          userID,
		"items.product_id": productID,
	}

	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": quantity,
			"updated_at":             time.Now(),
		},
	}

	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.product_id": productID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters)
	if err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *CartMongoRepository) RemoveItem(ctx context.Context, userID string, productID string) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$pull": bson.M{
			"items": bson.M{"product_id": productID},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *CartMongoRepository) DeleteCart(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

// cartIndexModels declares the carts collection's indexes. The unique
// user_id index is what keeps concurrent first-adds from racing two cart
// documents into existence for the same user.
func cartIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// CreateIndexes must run once at startup, before the repository serves
// traffic.
func (m *CartMongoRepository) CreateIndexes(ctx context.Context) error {
	if _, err := m.collection.Indexes().CreateMany(ctx, cartIndexModels()); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
