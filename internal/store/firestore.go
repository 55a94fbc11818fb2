package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"codecraftgo/internal/logger"
	"codecraftgo/internal/models"
)

const (
	usersCollection = "users"
	logsCollection  = "logs"
)

// LogStore persists chat logs in Firestore under users/{user_id}/logs/{chat_id}.
// Every operation is a single-document read or write scoped to one user; the
// caller is responsible for having checked ownership first.
type LogStore struct {
	client *firestore.Client
	log    *logger.Logger
}

func NewLogStore(client *firestore.Client, log *logger.Logger) *LogStore {
	return &LogStore{client: client, log: log}
}

func (s *LogStore) logDoc(userID, chatID string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(logsCollection).Doc(chatID)
}

// Save upserts the record at (user_id, chat_id). Last writer wins.
func (s *LogStore) Save(ctx context.Context, userID, chatID string, record models.ChatLog) (string, error) {
	if _, err := s.logDoc(userID, chatID).Set(ctx, record); err != nil {
		return "", fmt.Errorf("error saving chat log: %w", err)
	}
	return fmt.Sprintf("Log %s saved for user %s", chatID, userID), nil
}

// List returns all logs under user_id in store-native order, each augmented
// with its document key as chat_id.
func (s *LogStore) List(ctx context.Context, userID string) ([]models.ChatLog, error) {
	iter := s.client.Collection(usersCollection).Doc(userID).Collection(logsCollection).Documents(ctx)
	defer iter.Stop()

	logs := make([]models.ChatLog, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error fetching user logs: %w", err)
		}
		var record models.ChatLog
		if err := doc.DataTo(&record); err != nil {
			s.log.Warn("skipping undecodable chat log", "user_id", userID, "chat_id", doc.Ref.ID, "error", err)
			continue
		}
		record.ChatID = doc.Ref.ID
		logs = append(logs, record)
	}
	return logs, nil
}

// Delete removes the record if present. Deleting an absent document is not
// an error.
func (s *LogStore) Delete(ctx context.Context, userID, chatID string) (string, error) {
	if _, err := s.logDoc(userID, chatID).Delete(ctx); err != nil {
		return "", fmt.Errorf("error deleting chat log: %w", err)
	}
	return fmt.Sprintf("Log %s deleted for user %s", chatID, userID), nil
}

// UpdateTitle rewrites only the prompt field of an existing record. The
// update fails if the record does not exist.
func (s *LogStore) UpdateTitle(ctx context.Context, userID, chatID, newTitle string) (string, error) {
	_, err := s.logDoc(userID, chatID).Update(ctx, []firestore.Update{
		{Path: "prompt", Value: newTitle},
	})
	if err != nil {
		return "", fmt.Errorf("error updating chat prompt: %w", err)
	}
	return fmt.Sprintf("Log %s prompt updated for user %s", chatID, userID), nil
}
