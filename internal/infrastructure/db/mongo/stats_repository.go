package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

const questionsCollection = "questions"

// StatsRepository runs the dashboard aggregations over tickets and questions.
type StatsRepository struct {
	tickets   *mongo.Collection
	questions *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		tickets:   db.Collection(collectionTickets),
		questions: db.Collection(questionsCollection),
	}
}

// CountTicketsBy groups tickets by a top-level field such as status or priority.
func (r *StatsRepository) CountTicketsBy(ctx context.Context, field string, owner ports.TicketOwner) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerFilter(owner)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.tickets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate by %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", field, err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

// CountUnassignedOpen counts open tickets with neither assignee field set.
func (r *StatsRepository) CountUnassignedOpen(ctx context.Context, owner ports.TicketOwner) (int64, error) {
	and := bson.A{
		bson.M{"$or": bson.A{bson.M{"assignee_id": bson.M{"$exists": false}}, bson.M{"assignee_id": ""}}},
		bson.M{"$or": bson.A{bson.M{"assignee_email": bson.M{"$exists": false}}, bson.M{"assignee_email": ""}}},
	}
	if !owner.IsZero() {
		and = append(and, ownerFilter(owner))
	}
	filter := bson.M{"status": string(domain.StatusOpen), "$and": and}
	return r.tickets.CountDocuments(ctx, filter)
}

func (r *StatsRepository) CountQuestions(ctx context.Context) (int64, error) {
	return r.questions.CountDocuments(ctx, bson.M{})
}
