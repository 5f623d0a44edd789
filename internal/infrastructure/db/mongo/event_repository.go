package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

const eventsCollection = "ticket_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{db: db}
}

type eventDoc struct {
	TicketID    string         `bson:"ticket_id"`
	Kind        string         `bson:"kind"`
	Actor       string         `bson:"actor"`
	At          time.Time      `bson:"at"`
	Status      string         `bson:"status,omitempty"`
	Snapshot    *domain.Ticket `bson:"snapshot,omitempty"`
	ProcessedAt time.Time      `bson:"processed_at"`
}

// InsertChange persists a ticket change to the ticket_events audit collection.
func (r *EventRepository) InsertChange(ctx context.Context, change *domain.TicketChange) error {
	doc := eventDoc{
		TicketID:    change.TicketID,
		Kind:        string(change.Kind),
		Actor:       change.Actor,
		At:          change.At.UTC(),
		Snapshot:    change.Ticket,
		ProcessedAt: time.Now().UTC(),
	}
	if change.Ticket != nil {
		doc.Status = string(change.Ticket.Status)
	}

	_, err := r.db.Collection(eventsCollection).InsertOne(ctx, doc)
	return err
}

// ListByTicket returns a ticket's audit trail oldest first.
func (r *EventRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketChange, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})
	cur, err := r.db.Collection(eventsCollection).Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	out := make([]domain.TicketChange, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.TicketChange{
			Kind:     domain.ChangeKind(d.Kind),
			TicketID: d.TicketID,
			Ticket:   d.Snapshot,
			Actor:    d.Actor,
			At:       d.At,
		})
	}
	return out, nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ticket_id", Value: 1}, {Key: "at", Value: 1}},
	})
	return err
}
