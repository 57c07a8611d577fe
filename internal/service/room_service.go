package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/gcal"

	"github.com/patrickmn/go-cache"
)

type IRoomService interface {
	AvailableRooms(ctx context.Context, user *entity.UserRecord, start, end time.Time, office string, attendeeCount int) ([]entity.MeetingRoom, error)
}

type roomService struct {
	calendar gcal.API
	cache    *cache.Cache
	log      logger.ILogger
}

const roomCacheKey = "meeting-rooms"

func NewRoomService(calendar gcal.API, log logger.ILogger) IRoomService {
	return &roomService{
		calendar: calendar,
		cache:    cache.New(1*time.Hour, 10*time.Minute),
		log:      log,
	}
}

// AvailableRooms returns the rooms in the requested office that fit the
// attendee count and have no busy interval inside [start, end), smallest
// room first.
func (s *roomService) AvailableRooms(ctx context.Context, user *entity.UserRecord, start, end time.Time, office string, attendeeCount int) ([]entity.MeetingRoom, error) {
	rooms, err := s.allRooms(ctx, user)
	if err != nil {
		return nil, err
	}

	var candidates []entity.MeetingRoom
	for _, room := range rooms {
		if room.Capacity <= 0 {
			continue
		}
		if !matchesOffice(room, office) {
			continue
		}
		if attendeeCount > 0 && room.Capacity < attendeeCount {
			continue
		}
		candidates = append(candidates, room)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity < candidates[j].Capacity
	})
	if len(candidates) == 0 {
		return nil, nil
	}

	mails := make([]string, len(candidates))
	for i, room := range candidates {
		mails[i] = room.Mail
	}

	calendars, err := s.calendar.FreeBusy(ctx, user.Credentials, start, end, mails)
	if err != nil {
		return nil, err
	}

	var free []entity.MeetingRoom
	for _, room := range candidates {
		if cal, ok := calendars[room.Mail]; ok && len(cal.Busy) == 0 {
			free = append(free, room)
		}
	}
	return free, nil
}

// allRooms serves the directory's room list from a one-hour cache; the
// resource catalog changes rarely and the listing is expensive.
func (s *roomService) allRooms(ctx context.Context, user *entity.UserRecord) ([]entity.MeetingRoom, error) {
	if x, found := s.cache.Get(roomCacheKey); found {
		return x.([]entity.MeetingRoom), nil
	}

	rooms, err := s.calendar.ListResources(ctx, user.Credentials)
	if err != nil {
		return nil, err
	}
	s.cache.Set(roomCacheKey, rooms, cache.DefaultExpiration)
	s.log.Info("RoomService", "Room catalog refreshed", map[string]interface{}{
		"count": len(rooms),
	})
	return rooms, nil
}

func matchesOffice(room entity.MeetingRoom, office string) bool {
	if office == "" {
		return true
	}
	return strings.Contains(room.Name, office) || strings.EqualFold(room.Building, office)
}
