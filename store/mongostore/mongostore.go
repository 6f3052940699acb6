// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mongostore implements store.Store on MongoDB with one document per
// poll in the "polls" collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/store"
)

// DefaultDatabase is used when the connection URI names no database
const DefaultDatabase = "band_planner"

const collectionName = "polls"

type Store struct {
	client *mongo.Client
	polls  *mongo.Collection
}

// Open connects, pings and ensures the collection's indexes
func Open(ctx context.Context, uri string) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	s := &Store{
		client: client,
		polls:  client.Database(dbName).Collection(collectionName),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.polls.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *Store) CreatePoll(ctx context.Context, poll models.Poll) error {
	if poll.Responses == nil {
		poll.Responses = []models.Response{}
	}
	if _, err := s.polls.InsertOne(ctx, poll); err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (s *Store) LoadPoll(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := s.polls.FindOne(ctx, bson.M{"id": id}).Decode(&poll)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Poll{}, store.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to load poll: %w", err)
	}
	if poll.Responses == nil {
		poll.Responses = []models.Response{}
	}
	return poll, nil
}

func (s *Store) DeletePoll(ctx context.Context, id string) error {
	res, err := s.polls.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ReplaceResponses(ctx context.Context, id string, responses []models.Response) error {
	if responses == nil {
		responses = []models.Response{}
	}
	return s.set(ctx, id, bson.M{"responses": responses})
}

func (s *Store) ReplacePlanning(ctx context.Context, id string, planning models.Planning) error {
	return s.set(ctx, id, bson.M{"planning": planning})
}

func (s *Store) ReplaceRoster(ctx context.Context, id string, participants, instruments []string) error {
	if participants == nil {
		participants = []string{}
	}
	if instruments == nil {
		instruments = []string{}
	}
	return s.set(ctx, id, bson.M{"participants": participants, "instruments": instruments})
}

// set applies a single $set update to the poll with the given id
func (s *Store) set(ctx context.Context, id string, fields bson.M) error {
	res, err := s.polls.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
