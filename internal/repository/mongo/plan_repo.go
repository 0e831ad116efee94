package mongo

import (
	"context"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new workout plan repository backed
// by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// GetAll returns every stored workout plan. A plan document without a
// name is unusable (the name keys rotation state) and is dropped.
func (r *mongoPlanRepository) GetAll(ctx context.Context) ([]domain.WorkoutPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WorkoutPlan
	for cursor.Next(ctx) {
		var plan domain.WorkoutPlan
		if err := cursor.Decode(&plan); err != nil {
			log.Warnf("plan repo: dropping malformed document: %s", err)
			continue
		}
		if plan.Name == "" {
			log.Warn("plan repo: dropping plan document without a name")
			continue
		}
		plans = append(plans, plan)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// GetByName returns the plan with the given name, or ErrNotFound.
func (r *mongoPlanRepository) GetByName(ctx context.Context, name string) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, bson.M{"name": name}, options.FindOne()).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}
