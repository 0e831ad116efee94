package mongo

import (
	"context"
	"encoding/json"
	"strings"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	exerciseCollectionName = "exercises"

	// The catalog is small and effectively immutable, so cache the
	// full-list read for a few minutes.
	catalogCacheKey    = "exercises:all"
	catalogCacheExpire = 5 * 60 // seconds
	catalogCacheSize   = 2 * 1024 * 1024
)

// mongoExerciseRepository implements repository.ExerciseRepository.
type mongoExerciseRepository struct {
	collection *mongo.Collection
	cache      *freecache.Cache
}

// NewMongoExerciseRepository creates a new exercise catalog repository
// backed by MongoDB, with an in-process cache for full-catalog reads.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		cache:      freecache.NewCache(catalogCacheSize),
	}
}

// GetAll returns the whole exercise catalog. Malformed documents are
// dropped individually so one bad record never aborts the batch.
func (r *mongoExerciseRepository) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	if cached, err := r.cache.Get([]byte(catalogCacheKey)); err == nil {
		var exercises []domain.Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises, nil
		}
		// Unreadable cache entry, fall through to the store.
		r.cache.Del([]byte(catalogCacheKey))
	}

	exercises, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(exercises); err == nil {
		if err := r.cache.Set([]byte(catalogCacheKey), encoded, catalogCacheExpire); err != nil {
			log.Warnf("exercise repo: failed to cache catalog: %s", err)
		}
	}

	return exercises, nil
}

// GetByPrimaryMuscle returns the catalog entries targeting the given
// primary muscle.
func (r *mongoExerciseRepository) GetByPrimaryMuscle(ctx context.Context, muscle string) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"primaryMuscle": strings.TrimSpace(muscle)})
}

// GetByNames returns the catalog entries for the given exercise names.
func (r *mongoExerciseRepository) GetByNames(ctx context.Context, names []string) ([]domain.Exercise, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"name": bson.M{"$in": names}})
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	for cursor.Next(ctx) {
		var exercise domain.Exercise
		if err := cursor.Decode(&exercise); err != nil {
			// Missing fields decode to zero values; only a document
			// with the wrong shape ends up here. Drop it, keep the rest.
			log.Warnf("exercise repo: dropping malformed document: %s", err)
			continue
		}
		exercises = append(exercises, exercise)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}
