package service

import (
	"context"
	"errors"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
)

var ErrPlaylistClosed = errors.New("playlist is closed for this event")

// playlistOpenStatuses: guests can only add songs while the booking is live.
var playlistOpenStatuses = map[models.EventStatus]bool{
	models.StatusAwaitingContract: true,
	models.StatusApproved:         true,
}

type PlaylistService interface {
	AddEntry(ctx context.Context, entry *models.PlaylistEntry) error
	ListEntries(ctx context.Context, eventID uint) ([]models.PlaylistEntry, error)
	RemoveEntry(ctx context.Context, entryID uint) error
}

type playlistService struct {
	playlists repository.PlaylistRepository
	events    repository.EventRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, events repository.EventRepository) PlaylistService {
	return &playlistService{playlists: playlists, events: events}
}

func (s *playlistService) AddEntry(ctx context.Context, entry *models.PlaylistEntry) error {
	event, err := s.events.FindByID(ctx, entry.EventID)
	if err != nil {
		return ErrEventNotFound
	}
	// Guests may only submit while the event is live; employees can always
	// curate.
	if entry.Guest && !playlistOpenStatuses[event.Status] {
		return ErrPlaylistClosed
	}
	return s.playlists.Add(ctx, entry)
}

func (s *playlistService) ListEntries(ctx context.Context, eventID uint) ([]models.PlaylistEntry, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.playlists.ListByEvent(ctx, eventID)
}

func (s *playlistService) RemoveEntry(ctx context.Context, entryID uint) error {
	return s.playlists.Remove(ctx, entryID)
}
