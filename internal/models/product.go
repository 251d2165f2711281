package models

// Artisan describes the maker of a product.
type Artisan struct {
	ID       string `json:"id" gorm:"type:varchar(64)"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	Avatar   string `json:"avatar"`
	Location string `json:"location" gorm:"type:varchar(100)"`
}

// Product is an immutable catalog record.
type Product struct {
	ID            string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string   `json:"name" gorm:"type:varchar(100)"`
	Description   string   `json:"description" gorm:"type:text"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Images        []string `json:"images" gorm:"serializer:json"`
	Category      string   `json:"category" gorm:"index;type:varchar(50)"`
	Artisan       Artisan  `json:"artisan" gorm:"embedded;embeddedPrefix:artisan_"`
	Materials     []string `json:"materials" gorm:"serializer:json"`
	Dimensions    string   `json:"dimensions,omitempty"`
	Weight        string   `json:"weight,omitempty"`
	InStock       bool     `json:"inStock"`
	Featured      bool     `json:"featured"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Tags          []string `json:"tags" gorm:"serializer:json"`
}
