package models

import "time"

type Classroom struct {
	ID          int64     `json:"classroomID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EducatorID  *int64    `json:"educatorID"`
	CreatedAt   time.Time `json:"created_at"`
}
