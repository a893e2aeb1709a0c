package entity

// Owner is one restaurant account; every tenant-scoped row points at it.
type Owner struct {
	UUIDModel
	Audit
	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:255;not null" json:"address"`
	Information string `gorm:"size:500" json:"information"`
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `gorm:"not null" json:"isActive"`

	Accounts  []Account  `json:"-"`
	Staff     []Staff    `json:"-"`
	Customers []Customer `json:"-"`
	Tables    []Table    `json:"-"`
	Dishes    []Dish     `json:"-"`
	Orders    []Order    `json:"-"`
}
