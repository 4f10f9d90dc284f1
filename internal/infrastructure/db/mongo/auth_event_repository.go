package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/loccar/loccar-web/internal/core/ports"
)

const (
	collectionAuthEvents = "auth_events"
	opTimeout            = 5 * time.Second
	maxRecent            = 100
)

// authEventDoc is the stored shape of a ports.AuthEvent.
type authEventDoc struct {
	Type       string    `bson:"type"`
	ClientID   string    `bson:"client_id"`
	Email      string    `bson:"email,omitempty"`
	Role       string    `bson:"role,omitempty"`
	Reason     string    `bson:"reason,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// AuthEventRepository implements ports.AuthEventRepository.
type AuthEventRepository struct {
	col *mongo.Collection
}

func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{col: db.Collection(collectionAuthEvents)}
}

// EnsureIndexes creates the timestamp index used by Recent.
func (r *AuthEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create auth_events index: %w", err)
	}
	return nil
}

// InsertEvent appends one event to the audit collection.
func (r *AuthEventRepository) InsertEvent(ctx context.Context, event *ports.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := authEventDoc{
		Type:       string(event.Type),
		ClientID:   event.ClientID,
		Email:      event.Email,
		Role:       event.Role,
		Reason:     event.Reason,
		Timestamp:  event.Timestamp.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// Recent returns up to limit events, newest first.
func (r *AuthEventRepository) Recent(ctx context.Context, limit int) ([]*ports.AuthEvent, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []authEventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]*ports.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &ports.AuthEvent{
			Type:      ports.AuthEventType(d.Type),
			ClientID:  d.ClientID,
			Email:     d.Email,
			Role:      d.Role,
			Reason:    d.Reason,
			Timestamp: d.Timestamp,
		})
	}
	return events, nil
}
