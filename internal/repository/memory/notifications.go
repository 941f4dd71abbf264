package memory

import (
	"context"
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[n.UserID]; !ok {
		return repository.ErrNotFound
	}
	n.ID = newID()
	n.IsRead = false
	n.ReadAt = nil
	n.CreatedAt = r.s.stamp()
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *notificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *notificationRepo) ListByUser(_ context.Context, userID string, filter repository.NotificationFilter) ([]domain.Notification, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID != userID || (filter.UnreadOnly && n.IsRead) {
			continue
		}
		matched = append(matched, n)
	}
	sortNewestFirst(matched, func(n domain.Notification) time.Time { return n.CreatedAt })

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Notification{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *notificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id string) (*domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !n.IsRead {
		now := r.s.stamp()
		n.IsRead = true
		n.ReadAt = &now
		r.s.notifications[id] = n
	}
	return &n, nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	updated := 0
	for id, n := range r.s.notifications {
		if n.UserID != userID || n.IsRead {
			continue
		}
		now := r.s.stamp()
		n.IsRead = true
		n.ReadAt = &now
		r.s.notifications[id] = n
		updated++
	}
	return updated, nil
}

func (r *notificationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.notifications, id)
	return nil
}
