package models

// User credentials are stored and compared as-is. Hashing them would change
// the login semantics this app ships with; see DESIGN.md open questions.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Password string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Image       string  `json:"img"`
	Description string  `json:"description"`
	Reviews     uint    `json:"reviews"`
}

// Cart is one-per-user, enforced by lookup rather than a unique constraint.
// An empty cart is never deleted.
type Cart struct {
	ID     uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint       `gorm:"index;not null"           json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID"        json:"items"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"    json:"id"`
	CartID    uint `gorm:"index;not null"              json:"cart_id"`
	ProductID uint `gorm:"not null"                    json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"  json:"quantity"`
}
