package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authgate/authgate"
)

// Redis hash fields for a user record. A code field and its expiry field are
// written and deleted together, never one without the other.
const (
	fieldID            = "id"
	fieldName          = "name"
	fieldEmail         = "email"
	fieldPasswordHash  = "password_hash"
	fieldEmailVerified = "email_verified"
	fieldVerifyCode    = "verification_code"
	fieldVerifyExpires = "verification_expires"
	fieldResetCode     = "reset_code"
	fieldResetExpires  = "reset_expires"
	fieldCreatedAt     = "created_at"
)

// RedisUserStore persists user records as one hash per user plus an
// email-to-id index key. Email uniqueness is enforced with SETNX on the
// index.
type RedisUserStore struct {
	client *redis.Client
	prefix string
}

// NewRedisUserStore describes the newredisuserstore operation and its observable behavior.
//
// An empty prefix defaults to "ag". The store is safe for concurrent use.
func NewRedisUserStore(client *redis.Client, prefix string) *RedisUserStore {
	if prefix == "" {
		prefix = "ag"
	}
	return &RedisUserStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisUserStore) userKey(id string) string {
	return s.prefix + ":user:" + id
}

func (s *RedisUserStore) emailKey(email string) string {
	return s.prefix + ":email:" + email
}

// Create persists a new record. It fails with authgate.ErrEmailTaken when
// the email index already points at another record.
func (s *RedisUserStore) Create(ctx context.Context, record authgate.UserRecord) error {
	ok, err := s.client.SetNX(ctx, s.emailKey(record.Email), record.ID, 0).Result()
	if err != nil {
		return wrapUnavailable(err)
	}
	if !ok {
		return authgate.ErrEmailTaken
	}

	if err := s.client.HSet(ctx, s.userKey(record.ID), encodeRecord(record)).Err(); err != nil {
		// Undo the index claim so the email is not left pointing at a
		// half-written record.
		s.client.Del(ctx, s.emailKey(record.Email))
		return wrapUnavailable(err)
	}
	return nil
}

// GetByEmail resolves the email index and loads the record.
func (s *RedisUserStore) GetByEmail(ctx context.Context, email string) (authgate.UserRecord, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	if err != nil {
		return authgate.UserRecord{}, wrapUnavailable(err)
	}
	return s.GetByID(ctx, id)
}

// GetByID loads a record by primary id.
func (s *RedisUserStore) GetByID(ctx context.Context, id string) (authgate.UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.userKey(id)).Result()
	if err != nil {
		return authgate.UserRecord{}, wrapUnavailable(err)
	}
	if len(fields) == 0 {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return decodeRecord(fields)
}

// Delete removes the record and its email index entry. Deleting a missing
// record is a no-op.
func (s *RedisUserStore) Delete(ctx context.Context, id string) error {
	email, err := s.client.HGet(ctx, s.userKey(id), fieldEmail).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return wrapUnavailable(err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.userKey(id))
	pipe.Del(ctx, s.emailKey(email))
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// MarkVerified flips the verified flag and clears the verification pair in
// one transaction.
func (s *RedisUserStore) MarkVerified(ctx context.Context, id string) error {
	if err := s.requireUser(ctx, id); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.userKey(id), fieldEmailVerified, "1")
	pipe.HDel(ctx, s.userKey(id), fieldVerifyCode, fieldVerifyExpires)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// SetResetCode writes the reset pair, overwriting any outstanding pair.
func (s *RedisUserStore) SetResetCode(ctx context.Context, id, code string, expires time.Time) error {
	if err := s.requireUser(ctx, id); err != nil {
		return err
	}

	err := s.client.HSet(ctx, s.userKey(id),
		fieldResetCode, code,
		fieldResetExpires, encodeTime(expires),
	).Err()
	if err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// UpdatePassword writes the new hash and clears the reset pair in one
// transaction so a consumed code cannot be replayed.
func (s *RedisUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if err := s.requireUser(ctx, id); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.userKey(id), fieldPasswordHash, passwordHash)
	pipe.HDel(ctx, s.userKey(id), fieldResetCode, fieldResetExpires)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

func (s *RedisUserStore) requireUser(ctx context.Context, id string) error {
	exists, err := s.client.Exists(ctx, s.userKey(id)).Result()
	if err != nil {
		return wrapUnavailable(err)
	}
	if exists == 0 {
		return authgate.ErrUserNotFound
	}
	return nil
}

func encodeRecord(record authgate.UserRecord) map[string]interface{} {
	fields := map[string]interface{}{
		fieldID:            record.ID,
		fieldName:          record.Name,
		fieldEmail:         record.Email,
		fieldPasswordHash:  record.PasswordHash,
		fieldEmailVerified: encodeBool(record.EmailVerified),
		fieldCreatedAt:     encodeTime(record.CreatedAt),
	}
	if record.VerificationCode != "" {
		fields[fieldVerifyCode] = record.VerificationCode
		fields[fieldVerifyExpires] = encodeTime(record.VerificationExpires)
	}
	if record.ResetCode != "" {
		fields[fieldResetCode] = record.ResetCode
		fields[fieldResetExpires] = encodeTime(record.ResetExpires)
	}
	return fields
}

func decodeRecord(fields map[string]string) (authgate.UserRecord, error) {
	record := authgate.UserRecord{
		ID:               fields[fieldID],
		Name:             fields[fieldName],
		Email:            fields[fieldEmail],
		PasswordHash:     fields[fieldPasswordHash],
		EmailVerified:    fields[fieldEmailVerified] == "1",
		VerificationCode: fields[fieldVerifyCode],
		ResetCode:        fields[fieldResetCode],
	}

	var err error
	if record.CreatedAt, err = decodeTime(fields[fieldCreatedAt]); err != nil {
		return authgate.UserRecord{}, err
	}
	if record.VerificationExpires, err = decodeTime(fields[fieldVerifyExpires]); err != nil {
		return authgate.UserRecord{}, err
	}
	if record.ResetExpires, err = decodeTime(fields[fieldResetExpires]); err != nil {
		return authgate.UserRecord{}, err
	}
	return record, nil
}

func encodeBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func decodeTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed stored timestamp %q: %w", v, err)
	}
	return time.UnixMilli(ms), nil
}

func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", authgate.ErrStoreUnavailable, err)
}
