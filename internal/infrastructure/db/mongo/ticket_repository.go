package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

const collectionTickets = "tickets"

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

// Create inserts a new ticket document.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// FindByID retrieves a ticket by id.
func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Ticket
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns tickets oldest first. A non-zero owner restricts the result to
// tickets owned by user id, or by email for tickets that carry no user id.
func (r *TicketRepository) List(ctx context.Context, owner ports.TicketOwner) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, ownerFilter(owner), opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Ticket, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return out, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, at time.Time) (*domain.Ticket, error) {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": at.UTC()},
	})
}

// UpdateAssignee sets the assignee. Empty values remove the fields.
func (r *TicketRepository) UpdateAssignee(ctx context.Context, id, assigneeID, assigneeEmail string, at time.Time) (*domain.Ticket, error) {
	set := bson.M{"updated_at": at.UTC()}
	unset := bson.M{}
	if assigneeID != "" {
		set["assignee_id"] = assigneeID
	} else {
		unset["assignee_id"] = ""
	}
	if assigneeEmail != "" {
		set["assignee_email"] = assigneeEmail
	} else {
		unset["assignee_email"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return r.update(ctx, id, update)
}

// AppendReply pushes a reply and, when status is non-empty, sets it in the
// same update.
func (r *TicketRepository) AppendReply(ctx context.Context, id string, reply domain.Reply, status domain.TicketStatus) (*domain.Ticket, error) {
	set := bson.M{"updated_at": reply.Timestamp.UTC()}
	if status != "" {
		set["status"] = string(status)
	}
	return r.update(ctx, id, bson.M{
		"$set":  set,
		"$push": bson.M{"replies": reply},
	})
}

func (r *TicketRepository) update(ctx context.Context, id string, update bson.M) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Ticket
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// EnsureIndexes creates necessary indexes on the tickets collection.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func ownerFilter(owner ports.TicketOwner) bson.M {
	if owner.IsZero() {
		return bson.M{}
	}
	var or bson.A
	if owner.UserID != "" {
		or = append(or, bson.M{"user_id": owner.UserID})
	}
	if owner.Email != "" {
		or = append(or, bson.M{
			"user_id":    bson.M{"$in": bson.A{"", nil}},
			"user_email": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(owner.Email) + "$", Options: "i"},
		})
	}
	return bson.M{"$or": or}
}
