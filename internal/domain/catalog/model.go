package catalog

import "context"

// Zone is an equipment area on the gym floor
type Zone struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// GymClass is a featured group session on the gym floor
type GymClass struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Categories      []string `json:"categories"`
	DurationMinutes int      `json:"durationMinutes"`
	Schedule        []string `json:"schedule"`
}

// StudioClass is a class offered by a studio type
type StudioClass struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Level           string `json:"level"`
	Description     string `json:"description"`
}

// StudioPricing holds pay-as-you-go studio prices in minor units
type StudioPricing struct {
	DropIn   int64 `json:"dropIn"`
	TenClass int64 `json:"tenClass"`
	Monthly  int64 `json:"monthly"`
}

// StudioType is a studio discipline with its classes
type StudioType struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Benefits    []string      `json:"benefits"`
	Classes     []StudioClass `json:"classes"`
	Pricing     StudioPricing `json:"pricing"`
}

// ScheduleSlot is a class on the weekly studio timetable
type ScheduleSlot struct {
	Day   string `json:"day"`
	Time  string `json:"time"`
	Class string `json:"class"`
	Type  string `json:"type"`
}

// StudioService is a headline studio service
type StudioService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AccessMethod is a way of entering the building
type AccessMethod struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GymOfferings is everything shown for the gym floor
type GymOfferings struct {
	Zones         []Zone         `json:"zones"`
	Classes       []GymClass     `json:"classes"`
	AccessMethods []AccessMethod `json:"accessMethods"`
}

// StudioOfferings is everything shown for the studio
type StudioOfferings struct {
	Types    []StudioType    `json:"types"`
	Services []StudioService `json:"services"`
	Schedule []ScheduleSlot  `json:"schedule"`
}

// Service defines read access to the offering catalog
type Service interface {
	// Gym returns the gym floor offerings
	Gym(ctx context.Context) (*GymOfferings, error)

	// Studio returns the studio offerings
	Studio(ctx context.Context) (*StudioOfferings, error)

	// StudioType returns one studio discipline
	StudioType(ctx context.Context, id string) (*StudioType, error)
}
