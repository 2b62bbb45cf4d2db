package admin

type updateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	SizeML      int64  `json:"sizeMl" binding:"required,gt=0"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
}
