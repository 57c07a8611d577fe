package entity

import (
	"regexp"
	"strconv"
	"strings"
)

// MeetingRoom is a bookable calendar resource from the directory listing.
// Capacity 0 means the resource is not a meeting room (or carries no
// capacity marker) and is excluded from room search.
type MeetingRoom struct {
	Name     string
	Mail     string
	Capacity int
	Building string
}

var roomCapacityPattern = regexp.MustCompile(`[0-9]+p`)

// ParseRoomCapacity extracts the capacity from a room name carrying the
// "<N>p" convention, e.g. "B2C-203-8p" -> 8. Names without the marker
// yield 0.
func ParseRoomCapacity(roomName string) int {
	match := roomCapacityPattern.FindString(roomName)
	if len(match) < 2 {
		return 0
	}
	capacity, err := strconv.Atoi(strings.TrimSuffix(match, "p"))
	if err != nil {
		return 0
	}
	return capacity
}
