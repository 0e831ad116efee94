package mongo

import (
	"context"
	"errors"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollectionName = "settings"

// Setting document keys. Each setting is its own document keyed by _id,
// so every write touches exactly one key (last-writer-wins per key).
const (
	keyInProgress     = "isWorkoutInProgress"
	keyRestDuration   = "restDuration"
	keyLastWorkout    = "lastWorkout"
	keyActiveSnapshot = "activeWorkout"
	keyRotationPrefix = "rotation:"
)

// mongoSettingsRepository implements repository.SettingsRepository over
// a flat key/value settings collection.
type mongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates the session-recovery store backed
// by MongoDB.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection(settingsCollectionName),
	}
}

func (r *mongoSettingsRepository) InProgress(ctx context.Context) (bool, error) {
	var doc struct {
		Value bool `bson:"value"`
	}
	if err := r.get(ctx, keyInProgress, &doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return doc.Value, nil
}

func (r *mongoSettingsRepository) SetInProgress(ctx context.Context, inProgress bool) error {
	return r.set(ctx, keyInProgress, inProgress)
}

func (r *mongoSettingsRepository) RestDuration(ctx context.Context) (time.Duration, error) {
	var doc struct {
		Value int64 `bson:"value"` // milliseconds
	}
	if err := r.get(ctx, keyRestDuration, &doc); err != nil {
		return 0, err
	}
	return time.Duration(doc.Value) * time.Millisecond, nil
}

func (r *mongoSettingsRepository) SetRestDuration(ctx context.Context, d time.Duration) error {
	return r.set(ctx, keyRestDuration, d.Milliseconds())
}

func (r *mongoSettingsRepository) PlanRotation(ctx context.Context, planName string) (int, error) {
	var doc struct {
		Value int `bson:"value"`
	}
	if err := r.get(ctx, keyRotationPrefix+planName, &doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return doc.Value, nil
}

func (r *mongoSettingsRepository) SetPlanRotation(ctx context.Context, planName string, index int) error {
	return r.set(ctx, keyRotationPrefix+planName, index)
}

func (r *mongoSettingsRepository) LastWorkout(ctx context.Context) (string, error) {
	var doc struct {
		Value string `bson:"value"`
	}
	if err := r.get(ctx, keyLastWorkout, &doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return doc.Value, nil
}

func (r *mongoSettingsRepository) SetLastWorkout(ctx context.Context, name string) error {
	return r.set(ctx, keyLastWorkout, name)
}

func (r *mongoSettingsRepository) ActiveSnapshot(ctx context.Context) (*domain.SessionSnapshot, error) {
	var doc struct {
		Value domain.SessionSnapshot `bson:"value"`
	}
	if err := r.get(ctx, keyActiveSnapshot, &doc); err != nil {
		return nil, err
	}
	return &doc.Value, nil
}

func (r *mongoSettingsRepository) SaveActiveSnapshot(ctx context.Context, snapshot domain.SessionSnapshot) error {
	return r.set(ctx, keyActiveSnapshot, snapshot)
}

func (r *mongoSettingsRepository) ClearActiveSnapshot(ctx context.Context) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": keyActiveSnapshot})
	return err
}

func (r *mongoSettingsRepository) get(ctx context.Context, key string, out any) error {
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func (r *mongoSettingsRepository) set(ctx context.Context, key string, value any) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	return err
}
