package domain

type Product struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:200;not null"`
	SizeML      int64  `json:"sizeMl" gorm:"not null"`
	Price       int64  `json:"price" gorm:"not null"` // INR, whole rupees
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" gorm:"size:500"`
	IsActive    bool   `json:"isActive" gorm:"default:true"`
}
