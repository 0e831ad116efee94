package mongo

import (
	"context"
	"errors"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout history repository
// backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// GetAll returns the full workout history, oldest first.
func (r *mongoWorkoutRepository) GetAll(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return r.find(ctx, bson.M{})
}

// GetSince returns the records whose start time is at or after start,
// oldest first.
func (r *mongoWorkoutRepository) GetSince(ctx context.Context, start time.Time) ([]domain.WorkoutRecord, error) {
	return r.find(ctx, bson.M{"startTime": bson.M{"$gte": start}})
}

// GetByID returns a single workout record by its id field.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error) {
	var record domain.WorkoutRecord
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save inserts a completed workout record. Records are immutable once
// written; there is no update path.
func (r *mongoWorkoutRepository) Save(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.WorkoutRecord
	for cursor.Next(ctx) {
		var record domain.WorkoutRecord
		if err := cursor.Decode(&record); err != nil {
			log.Warnf("workout repo: dropping malformed document: %s", err)
			continue
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
