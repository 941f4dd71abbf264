// Package memory provides mutex-guarded in-process implementations of the
// repository interfaces. It backs the service when no Postgres DSN is configured
// and is used throughout the tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

// Store holds every table. Use the accessor methods to obtain repositories.
type Store struct {
	mu            sync.RWMutex
	last          time.Time
	users         map[string]domain.User
	seekers       map[string]domain.JobSeekerProfile
	employers     map[string]domain.EmployerProfile
	jobs          map[string]domain.Job
	applications  map[string]domain.Application
	notifications map[string]domain.Notification
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		seekers:       make(map[string]domain.JobSeekerProfile),
		employers:     make(map[string]domain.EmployerProfile),
		jobs:          make(map[string]domain.Job),
		applications:  make(map[string]domain.Application),
		notifications: make(map[string]domain.Notification),
	}
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Profiles returns the profile repository view.
func (s *Store) Profiles() repository.ProfileRepository { return &profileRepo{s} }

// Jobs returns the job repository view.
func (s *Store) Jobs() repository.JobRepository { return &jobRepo{s} }

// Applications returns the application repository view.
func (s *Store) Applications() repository.ApplicationRepository { return &applicationRepo{s} }

// Notifications returns the notification repository view.
func (s *Store) Notifications() repository.NotificationRepository { return &notificationRepo{s} }

// stamp returns a strictly increasing timestamp so that newest-first ordering is
// stable even when records are created within the same clock tick. Callers hold mu.
func (s *Store) stamp() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func newID() string {
	return uuid.NewString()
}

func sortNewestFirst[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}
