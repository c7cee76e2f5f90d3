package model

import (
	"fmt"

	"gorm.io/gorm"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// swagger:model Course
type Course struct {
	BaseModel
	SubjectID   uint        `gorm:"not null;index:idx_course_subject_level,priority:1" json:"subjectId"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Level       CourseLevel `gorm:"size:20;not null;index:idx_course_subject_level,priority:2" json:"level"`
	Description string      `gorm:"type:text" json:"description"`
	URL         *string     `gorm:"size:500" json:"url,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	level := c.Level
	if cols, ok := tx.Statement.Dest.(map[string]interface{}); ok {
		v, ok := cols["level"]
		if !ok {
			return nil
		}
		level = CourseLevel(fmt.Sprint(v))
	}
	if !level.Valid() {
		return fmt.Errorf("unknown course level %q", level)
	}
	return nil
}
