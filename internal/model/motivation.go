package model

type Motivation struct {
	BaseModel
	Content         string `gorm:"type:text;not null" json:"content"`
	IsEnabled       bool   `gorm:"default:true" json:"isEnabled"`
	IsCurrentlyUsed bool   `gorm:"default:false" json:"isCurrentlyUsed"`
}

func (Motivation) TableName() string {
	return "motivations"
}
