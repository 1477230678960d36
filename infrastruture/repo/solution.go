package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSolutionNotFound = errors.New("solution not found")

// SolutionRepo handles the persistence of solutions in MongoDB.
type SolutionRepo struct {
	collection *mongo.Collection
}

// NewSolutionRepo creates a new SolutionRepo with the given MongoDB client, database name, and collection name.
func NewSolutionRepo(client *mongo.Client, dbName, collectionName string) *SolutionRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SolutionRepo{
		collection: collection,
	}
}

// Save inserts or updates a solution in the repository.
// If the solution already exists, the stored record is replaced.
func (r *SolutionRepo) Save(solution *dmn.Solution) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": solution.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, solution, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a solution by its ID.
// Returns ErrSolutionNotFound if no solution has the ID.
func (r *SolutionRepo) ByID(id uuid.UUID) (*dmn.Solution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var solution dmn.Solution
	if err := r.collection.FindOne(ctx, filter).Decode(&solution); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSolutionNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &solution, nil
}

// List returns the solutions matching the query filters, sorted ascending by the query key.
func (r *SolutionRepo) List(query dmn.ListQuery) ([]*dmn.Solution, error) {
	query, err := query.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: query.SortBy, Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, listFilter(query.Filters), opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	solutions := make([]*dmn.Solution, 0)
	if err := cursor.All(ctx, &solutions); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return solutions, nil
}

// listFilter matches a document whose algo, status or size equals any of filters.
func listFilter(filters []string) bson.M {
	if len(filters) == 0 {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"algo": bson.M{"$in": filters}},
		bson.M{"status": bson.M{"$in": filters}},
		bson.M{"size_str": bson.M{"$in": filters}},
	}}
}
