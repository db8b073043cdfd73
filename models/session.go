package models

import "time"

// SessionStatus enumerates the lifecycle states of a session.
type SessionStatus string

const (
	SessionAvailable SessionStatus = "available"
	SessionBooked    SessionStatus = "booked"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// SessionCategory enumerates the published session categories.
type SessionCategory string

const (
	CategoryTech      SessionCategory = "Tech"
	CategoryCareer    SessionCategory = "Career"
	CategoryDesign    SessionCategory = "Design"
	CategoryBusiness  SessionCategory = "Business"
	CategoryMarketing SessionCategory = "Marketing"
	CategoryHealth    SessionCategory = "Health"
	CategoryEducation SessionCategory = "Education"
	CategoryOther     SessionCategory = "Other"
)

// ValidCategories lists every accepted session category.
var ValidCategories = []SessionCategory{
	CategoryTech, CategoryCareer, CategoryDesign, CategoryBusiness,
	CategoryMarketing, CategoryHealth, CategoryEducation, CategoryOther,
}

const (
	MinSessionDuration = 15  // minutes
	MaxSessionDuration = 480 // minutes
	MaxSessionTags     = 10
	MaxParticipants    = 50
)

// Session represents a publishable slot of availability.
type Session struct {
	ID              string          `bson:"id" json:"id"`
	Title           string          `bson:"title" json:"title"`
	Description     string          `bson:"description" json:"description"`
	Category        SessionCategory `bson:"category" json:"category"`
	StartTime       time.Time       `bson:"start_time" json:"startTime"`
	Duration        int             `bson:"duration" json:"duration"` // minutes, [15,480]
	CreatorID       string          `bson:"creator_id" json:"creatorId"`
	Status          SessionStatus   `bson:"status" json:"status"`
	MaxParticipants int             `bson:"max_participants" json:"maxParticipants"`
	Price           float64         `bson:"price" json:"price"`
	Tags            []string        `bson:"tags" json:"tags"`
	MeetingLink     string          `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// IsValidCategory reports whether c is one of the accepted categories.
func IsValidCategory(c SessionCategory) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

// EndTime returns the instant the session finishes.
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.Duration) * time.Minute)
}
