package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tofind/freelead/internal/entity"
)

// FileStore keeps users in a JSON file. Access is serialized by an
// in-process mutex; concurrent writers from multiple processes would race,
// which is accepted for the single-node deployments this store targets.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the backing file when missing.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte("[]"), 0o644); writeErr != nil {
			return nil, fmt.Errorf("initialise user file: %w", writeErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat user file: %w", err)
	}
	return s, nil
}

// FindByEmail retrieves a user by email.
func (s *FileStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user, rejecting duplicate emails.
func (s *FileStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			return ErrEmailDuplicate
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return s.save(append(users, *user))
}

// SetPremium updates the entitlement flag and subscription metadata.
func (s *FileStore) SetPremium(_ context.Context, email string, premium bool, customerID, country, planType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(email, func(user *entity.User) error {
		user.Premium = premium
		if customerID != "" {
			user.StripeCustomerID = customerID
		}
		if country != "" {
			user.Country = country
		}
		if planType != "" {
			user.PlanType = planType
		}
		return nil
	})
}

// ConsumeQuota spends one unit of today's contact quota.
func (s *FileStore) ConsumeQuota(_ context.Context, email string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := 0
	err := s.update(email, func(user *entity.User) error {
		day := today()
		if user.QuotaDay != day {
			user.QuotaDay = day
			user.QuotaUsed = 0
		}
		if user.QuotaUsed >= limit {
			return ErrQuotaExceeded
		}
		user.QuotaUsed++
		remaining = limit - user.QuotaUsed
		return nil
	})
	return remaining, err
}

// update applies fn to the matching user and persists the result. Callers
// must hold the mutex.
func (s *FileStore) update(email string, fn func(*entity.User) error) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			if err := fn(&users[i]); err != nil {
				return err
			}
			users[i].UpdatedAt = time.Now().UTC()
			return s.save(users)
		}
	}
	return ErrUserNotFound
}

func (s *FileStore) load() ([]entity.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read user file: %w", err)
	}
	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode user file: %w", err)
	}
	return users, nil
}

func (s *FileStore) save(users []entity.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write user file: %w", err)
	}
	return nil
}

var _ UserStore = (*FileStore)(nil)
