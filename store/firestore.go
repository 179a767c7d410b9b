// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielhkuo/wordstorm/models"
)

// Firestore document layout:
//
//	sessions/{id}                 {question, isActive, createdAt}
//	sessions/{id}/words/{WORD}    {word, count, firstSeen, lastUpdated}
//	sessions/{id}/votes/{auto}    {name, word, timestamp}
//
// The words subcollection is the materialized aggregate; the votes
// subcollection is the append-only audit log. TopWords orders by count
// descending then firstSeen ascending, which needs a composite index on
// the words collection group in production projects.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) sessions() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

type sessionDoc struct {
	Question  string    `firestore:"question"`
	IsActive  bool      `firestore:"isActive"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func sessionFromSnapshot(doc *firestore.DocumentSnapshot) (*models.Session, error) {
	var data sessionDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", doc.Ref.ID, err)
	}
	return &models.Session{
		ID:        doc.Ref.ID,
		Question:  data.Question,
		IsActive:  data.IsActive,
		CreatedAt: data.CreatedAt,
	}, nil
}

func (s *FirestoreStore) Increment(ctx context.Context, sessionID, word, voterName string) (int64, error) {
	now := time.Now()
	sessionRef := s.sessions().Doc(sessionID)
	wordRef := sessionRef.Collection("words").Doc(word)
	voteRef := sessionRef.Collection("votes").NewDoc()

	var newCount int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// Reads must come before writes in a Firestore transaction.
		doc, err := tx.Get(wordRef)
		switch {
		case status.Code(err) == codes.NotFound:
			newCount = 1
			if err := tx.Create(wordRef, map[string]interface{}{
				"word":        word,
				"count":       1,
				"firstSeen":   now,
				"lastUpdated": now,
			}); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			count, err := doc.DataAt("count")
			if err != nil {
				return err
			}
			current, ok := count.(int64)
			if !ok {
				return fmt.Errorf("unexpected count type %T for word %q", count, word)
			}
			newCount = current + 1
			if err := tx.Update(wordRef, []firestore.Update{
				{Path: "count", Value: firestore.Increment(1)},
				{Path: "lastUpdated", Value: now},
			}); err != nil {
				return err
			}
		}

		return tx.Create(voteRef, map[string]interface{}{
			"name":      voterName,
			"word":      word,
			"timestamp": now,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record vote: %w", err)
	}

	return newCount, nil
}

func (s *FirestoreStore) TopWords(ctx context.Context, sessionID string, n int) ([]models.WordCount, error) {
	query := s.sessions().Doc(sessionID).Collection("words").
		OrderBy("count", firestore.Desc).
		OrderBy("firstSeen", firestore.Asc).
		Limit(n)

	iter := query.Documents(ctx)
	defer iter.Stop()

	entries := []models.WordCount{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query top words: %w", err)
		}

		var data struct {
			Word  string `firestore:"word"`
			Count int64  `firestore:"count"`
		}
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("failed to decode word count: %w", err)
		}
		entries = append(entries, models.WordCount{Word: data.Word, Count: data.Count})
	}

	return entries, nil
}

func (s *FirestoreStore) ClearWords(ctx context.Context, sessionID string) error {
	sessionRef := s.sessions().Doc(sessionID)
	if err := s.deleteCollection(ctx, sessionRef.Collection("words")); err != nil {
		return fmt.Errorf("failed to clear word counts: %w", err)
	}
	if err := s.deleteCollection(ctx, sessionRef.Collection("votes")); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	return nil
}

func (s *FirestoreStore) VoteCount(ctx context.Context, sessionID string) (int64, error) {
	// Select() fetches document names only; counting them avoids reading
	// every vote payload.
	iter := s.sessions().Doc(sessionID).Collection("votes").Select().Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count votes: %w", err)
		}
		count++
	}
	return count, nil
}

func (s *FirestoreStore) CreateSession(ctx context.Context, question string) (*models.Session, error) {
	now := time.Now()
	newRef := s.sessions().NewDoc()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		active, err := tx.Documents(s.sessions().Where("isActive", "==", true)).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range active {
			if err := tx.Update(doc.Ref, []firestore.Update{{Path: "isActive", Value: false}}); err != nil {
				return err
			}
		}
		return tx.Create(newRef, map[string]interface{}{
			"question":  question,
			"isActive":  true,
			"createdAt": now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        newRef.ID,
		Question:  question,
		IsActive:  true,
		CreatedAt: now,
	}, nil
}

func (s *FirestoreStore) ActiveSession(ctx context.Context) (*models.Session, error) {
	iter := s.sessions().Where("isActive", "==", true).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}
	return sessionFromSnapshot(doc)
}

func (s *FirestoreStore) Sessions(ctx context.Context) ([]*models.Session, error) {
	iter := s.sessions().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	sessions := []*models.Session{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query sessions: %w", err)
		}
		session, err := sessionFromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *FirestoreStore) ClearAll(ctx context.Context) error {
	iter := s.sessions().Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if err := s.ClearWords(ctx, doc.Ref.ID); err != nil {
			return err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", doc.Ref.ID, err)
		}
	}
	return nil
}

// deleteCollection removes every document of a subcollection through a
// BulkWriter.
func (s *FirestoreStore) deleteCollection(ctx context.Context, col *firestore.CollectionRef) error {
	bw := s.client.BulkWriter(ctx)

	iter := col.Select().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return err
		}
	}

	bw.End()
	return nil
}
