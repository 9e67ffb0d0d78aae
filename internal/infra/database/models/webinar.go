package models

import (
	"time"
)

type Webinar struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	OrganizerID string    `json:"organizerId" gorm:"type:text;index;not null"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	StartDate   time.Time `json:"startDate" gorm:"type:timestamp with time zone;not null"`
	EndDate     time.Time `json:"endDate" gorm:"type:timestamp with time zone;not null"`
	Seats       int       `json:"seats" gorm:"type:integer;not null"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
