package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resqlink/emergency-directory/internal/core/domain"
)

const bloodBanksCollection = "blood_banks"

type BloodBankRepository struct {
	coll *mongo.Collection
}

func NewBloodBankRepository(db *mongo.Database) *BloodBankRepository {
	return &BloodBankRepository{coll: db.Collection(bloodBanksCollection)}
}

func (r *BloodBankRepository) Create(ctx context.Context, b *domain.BloodBank) (*domain.BloodBank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBloodBankExists
		}
		return nil, fmt.Errorf("insert blood bank: %w", err)
	}
	return b, nil
}

func (r *BloodBankRepository) FindByID(ctx context.Context, id string) (*domain.BloodBank, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BloodBankRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.BloodBank, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *BloodBankRepository) List(ctx context.Context) ([]*domain.BloodBank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blood banks: %w", err)
	}
	defer cur.Close(ctx)

	var banks []*domain.BloodBank
	if err := cur.All(ctx, &banks); err != nil {
		return nil, fmt.Errorf("decode blood banks: %w", err)
	}
	return banks, nil
}

func (r *BloodBankRepository) Update(ctx context.Context, b *domain.BloodBank) (*domain.BloodBank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return nil, fmt.Errorf("update blood bank: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBloodBankNotFound
	}
	return b, nil
}

func (r *BloodBankRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blood bank: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBloodBankNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *BloodBankRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}

func (r *BloodBankRepository) findOne(ctx context.Context, filter bson.M) (*domain.BloodBank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.BloodBank
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBloodBankNotFound
		}
		return nil, fmt.Errorf("find blood bank: %w", err)
	}
	return &b, nil
}
