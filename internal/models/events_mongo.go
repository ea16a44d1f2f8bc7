package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by listing and search.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: ColStartDate, Value: 1}},
			Options: options.Index().SetName("start_date_idx"),
		},
		// bounding box candidates
		{
			Keys: bson.D{
				{Key: ColLatitude, Value: 1},
				{Key: ColLongitude, Value: 1},
			},
			Options: options.Index().SetName("lat_lng_idx"),
		},
		{
			Keys:    bson.D{{Key: ColCategory, Value: 1}},
			Options: options.Index().SetName("category_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
		}
		return nil, fmt.Errorf("failed to insert event into database: %w", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	return mdb.find(ctx, bson.M{}, -1)
}

func (mdb *MongodbRepo) FindEvents(ctx context.Context, preds []Predicate) ([]*Event, error) {
	filter, err := MongoFilter(preds)
	if err != nil {
		return nil, err
	}
	return mdb.find(ctx, filter, 1)
}

func (mdb *MongodbRepo) find(ctx context.Context, filter bson.M, order int) ([]*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: ColStartDate, Value: order}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) ReplaceEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	res, err := col.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return nil, fmt.Errorf("failed to replace event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return event, nil
}

func (mdb *MongodbRepo) DeleteAllEvents(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return 0, err
	}

	res, err := col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	return res.DeletedCount, nil
}

// MongoFilter renders preds as a single $and query document.
func MongoFilter(preds []Predicate) (bson.M, error) {
	if len(preds) == 0 {
		return bson.M{}, nil
	}

	conds := make(bson.A, 0, len(preds))
	for _, p := range preds {
		cond, err := mongoCondition(p)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return bson.M{"$and": conds}, nil
}

func mongoCondition(p Predicate) (bson.M, error) {
	var cond bson.M
	switch p.Op {
	case OpNotNull:
		return bson.M{p.Column: bson.M{"$ne": nil}}, nil
	case OpEq:
		cond = bson.M{p.Column: p.Value}
	case OpGte:
		cond = bson.M{p.Column: bson.M{"$gte": p.Value}}
	case OpLte:
		cond = bson.M{p.Column: bson.M{"$lte": p.Value}}
	default:
		return nil, fmt.Errorf("unsupported operator %q on %s", p.Op, p.Column)
	}

	if p.OrNull {
		// {field: null} matches both null and missing fields
		return bson.M{"$or": bson.A{bson.M{p.Column: nil}, cond}}, nil
	}
	return cond, nil
}
