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

const hospitalsCollection = "hospitals"

type HospitalRepository struct {
	coll *mongo.Collection
}

func NewHospitalRepository(db *mongo.Database) *HospitalRepository {
	return &HospitalRepository{coll: db.Collection(hospitalsCollection)}
}

func (r *HospitalRepository) Create(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	h.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrHospitalExists
		}
		return nil, fmt.Errorf("insert hospital: %w", err)
	}
	return h, nil
}

func (r *HospitalRepository) FindByID(ctx context.Context, id string) (*domain.Hospital, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *HospitalRepository) FindByName(ctx context.Context, name string) (*domain.Hospital, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *HospitalRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Hospital, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *HospitalRepository) List(ctx context.Context) ([]*domain.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer cur.Close(ctx)

	var hospitals []*domain.Hospital
	if err := cur.All(ctx, &hospitals); err != nil {
		return nil, fmt.Errorf("decode hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *HospitalRepository) Update(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrHospitalExists
		}
		return nil, fmt.Errorf("update hospital: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrHospitalNotFound
	}
	return h, nil
}

func (r *HospitalRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete hospital: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHospitalNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing name uniqueness and owner lookups.
func (r *HospitalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *HospitalRepository) findOne(ctx context.Context, filter bson.M) (*domain.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.Hospital
	if err := r.coll.FindOne(ctx, filter).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("find hospital: %w", err)
	}
	return &h, nil
}
