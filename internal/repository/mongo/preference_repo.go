package mongo

import (
	"context"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const preferenceCollectionName = "preferences"

// mongoPreferenceRepository implements repository.PreferenceRepository.
// Documents are keyed by exercise name (_id), one per exercise.
type mongoPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPreferenceRepository creates a new exercise preference
// repository backed by MongoDB.
func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	return &mongoPreferenceRepository{
		collection: db.Collection(preferenceCollectionName),
	}
}

// GetAll returns exercise name -> selection count for every stored
// preference record.
func (r *mongoPreferenceRepository) GetAll(ctx context.Context) (map[string]int, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var pref domain.ExercisePreference
		if err := cursor.Decode(&pref); err != nil {
			log.Warnf("preference repo: dropping malformed document: %s", err)
			continue
		}
		if pref.ExerciseName == "" {
			continue
		}
		counts[pref.ExerciseName] = pref.SelectionCount
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// IncrementSelection bumps the selection counter for the exercise and
// stamps the selection time. The upserted $inc makes read-increment-
// write a single atomic operation on the server, so sequential calls
// never lose an update.
func (r *mongoPreferenceRepository) IncrementSelection(ctx context.Context, exerciseName string) error {
	filter := bson.M{"_id": exerciseName}
	update := bson.M{
		"$inc": bson.M{"selectionCount": 1},
		"$set": bson.M{"lastSelected": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"exerciseName": exerciseName,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
