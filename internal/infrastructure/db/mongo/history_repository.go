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

const historiesCollection = "patient_histories"

type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(historiesCollection)}
}

// Upsert inserts or replaces the single record keyed by patient id,
// preserving the original creation timestamp on replace.
func (r *HistoryRepository) Upsert(ctx context.Context, h *domain.PatientHistory) (*domain.PatientHistory, error) {
	existing, err := r.FindByPatient(ctx, h.PatientID)
	switch {
	case err == nil:
		h.ID = existing.ID
		h.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrHistoryNotFound):
		h.ID = primitive.NewObjectID().Hex()
	default:
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": h.ID}, h, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("upsert patient history: %w", err)
	}
	return h, nil
}

func (r *HistoryRepository) FindByPatient(ctx context.Context, patientID string) (*domain.PatientHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.PatientHistory
	if err := r.coll.FindOne(ctx, bson.M{"patient_id": patientID}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("find patient history: %w", err)
	}
	return &h, nil
}

func (r *HistoryRepository) DeleteByPatient(ctx context.Context, patientID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return fmt.Errorf("delete patient history: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHistoryNotFound
	}
	return nil
}

// EnsureIndexes enforces the one-record-per-patient invariant.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "patient_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
