package models

// explicit join model so both sides cascade through the join rows only
type GenreTitle struct {
	GenreID int64 `json:"genre_id" gorm:"primaryKey"`
	TitleID int64 `json:"title_id" gorm:"primaryKey"`

	Genre *Genre `json:"-" gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE;"`
	Title *Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
