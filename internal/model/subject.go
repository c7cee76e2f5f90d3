package model

// Subject 学科，参考数据，核心逻辑只读
// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Subject) TableName() string {
	return "subjects"
}
