package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/govmeet/minutes-pdf-service/internal/database"
)

// GenerationRecord is the Mongo representation of one generation attempt.
type GenerationRecord struct {
	ID         string    `bson:"recordId" json:"recordId"`
	MinutesID  string    `bson:"minutesId" json:"minutesId"`
	Outcome    string    `bson:"outcome" json:"outcome"`
	FileID     string    `bson:"fileId,omitempty" json:"fileId,omitempty"`
	Error      string    `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt  time.Time `bson:"startedAt" json:"startedAt"`
	FinishedAt time.Time `bson:"finishedAt" json:"finishedAt"`
	DurationMS int64     `bson:"durationMs" json:"durationMs"`
}

// Journal records generation attempts for operational forensics. When no
// Mongo URI is configured every operation is a no-op.
type Journal struct {
	uri      string
	database string
}

func NewJournal(uri, database string) *Journal {
	return &Journal{uri: uri, database: database}
}

// Enabled reports whether the journal has a backing store.
func (j *Journal) Enabled() bool { return j.uri != "" }

// Save upserts a generation record.
func (j *Journal) Save(ctx context.Context, rec *GenerationRecord) error {
	if j.uri == "" {
		return nil
	}
	client, err := database.ConnectMongo(ctx, j.uri, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	col := client.Database(j.database).Collection("generation_records")
	filter := bson.M{"recordId": rec.ID}
	opts := options.Update().SetUpsert(true)
	if _, err := col.UpdateOne(ctx, filter, bson.M{"$set": rec}, opts); err != nil {
		return fmt.Errorf("save generation record: %w", err)
	}
	return nil
}

// LastFor fetches the most recent generation record for a minutes
// document. Returns nil when there is none (or the journal is disabled).
func (j *Journal) LastFor(ctx context.Context, minutesID string) (*GenerationRecord, error) {
	if j.uri == "" {
		return nil, nil
	}
	client, err := database.ConnectMongo(ctx, j.uri, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	col := client.Database(j.database).Collection("generation_records")
	opts := options.FindOne().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	var rec GenerationRecord
	if err := col.FindOne(ctx, bson.M{"minutesId": minutesID}, opts).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
