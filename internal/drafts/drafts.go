// Package drafts keeps each user's unsaved editor state per language.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gsarma/codepad/internal/code"
)

// ErrUnknownLanguage is returned for languages the editor cannot run.
var ErrUnknownLanguage = errors.New("unknown language")

// Draft is the editor content for one language.
type Draft struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	Input     string     `json:"input"`
	Saved     bool       `json:"saved"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Store reads and writes drafts in Redis hashes keyed draft:<user>:<language>.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a Store. A zero ttl keeps drafts forever.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(userID, language string) string {
	return "draft:" + userID + ":" + language
}

func checkLanguage(language string) (code.Language, error) {
	lang, err := code.LookupLanguage(language)
	if err != nil {
		return code.Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return lang, nil
}

// Get returns the saved draft, or the language's starter program with an
// empty input when nothing is saved.
func (s *Store) Get(ctx context.Context, userID, language string) (Draft, error) {
	lang, err := checkLanguage(language)
	if err != nil {
		return Draft{}, err
	}

	fields, err := s.rdb.HGetAll(ctx, key(userID, language)).Result()
	if err != nil {
		return Draft{}, fmt.Errorf("load draft: %w", err)
	}

	d := Draft{Language: language, Code: lang.Starter}
	if len(fields) == 0 {
		return d, nil
	}
	d.Saved = true
	if c := fields["code"]; c != "" {
		d.Code = c
	}
	d.Input = fields["input"]
	if ts, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		d.UpdatedAt = &ts
	}
	return d, nil
}

// Save stores code and input for the language.
func (s *Store) Save(ctx context.Context, userID, language, source, input string) (Draft, error) {
	if _, err := checkLanguage(language); err != nil {
		return Draft{}, err
	}

	now := time.Now().UTC()
	k := key(userID, language)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, map[string]interface{}{
		"code":       source,
		"input":      input,
		"updated_at": now.Format(time.RFC3339Nano),
	})
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return Draft{Language: language, Code: source, Input: input, Saved: true, UpdatedAt: &now}, nil
}

// Reset deletes the draft so the next Get returns the starter program.
func (s *Store) Reset(ctx context.Context, userID, language string) error {
	if _, err := checkLanguage(language); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, key(userID, language)).Err(); err != nil {
		return fmt.Errorf("reset draft: %w", err)
	}
	return nil
}
