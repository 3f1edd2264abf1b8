package model

import (
	"time"
)

type Cafe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:250;uniqueIndex:uq_cafe_name;not null"`
	MapURL       string    `json:"map_url" gorm:"size:500;not null"`
	ImgURL       string    `json:"img_url" gorm:"size:500;not null"`
	Location     string    `json:"location" gorm:"size:250;not null"`
	Seats        string    `json:"seats" gorm:"size:250;not null"`
	HasToilet    bool      `json:"has_toilet" gorm:"not null"`
	HasWifi      bool      `json:"has_wifi" gorm:"not null"`
	HasSockets   bool      `json:"has_sockets" gorm:"not null"`
	CanTakeCalls bool      `json:"can_take_calls" gorm:"not null"`
	CoffeePrice  *string   `json:"coffee_price" gorm:"size:250"`
	AuthorID     *uint     `json:"author_id"`
	Author       *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName keeps the singular table name used by existing deployments.
func (Cafe) TableName() string {
	return "cafe"
}

// EditableBy reports whether u may change the cafe: its author or an admin.
func (c *Cafe) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return c.AuthorID != nil && *c.AuthorID == u.ID
}

// AuthorName returns the author's display name, or nil when the cafe has none.
func (c *Cafe) AuthorName() *string {
	if c.Author == nil {
		return nil
	}
	name := c.Author.Name
	return &name
}

// CafeResponse is the JSON shape served by the read API.
type CafeResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	MapURL       string  `json:"map_url"`
	ImgURL       string  `json:"img_url"`
	Location     string  `json:"location"`
	Seats        string  `json:"seats"`
	HasToilet    bool    `json:"has_toilet"`
	HasWifi      bool    `json:"has_wifi"`
	HasSockets   bool    `json:"has_sockets"`
	CanTakeCalls bool    `json:"can_take_calls"`
	CoffeePrice  *string `json:"coffee_price"`
	AuthorID     *uint   `json:"author_id"`
	AuthorName   *string `json:"author_name"`
}

func (c *Cafe) Response() CafeResponse {
	return CafeResponse{
		ID:           c.ID,
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		Seats:        c.Seats,
		HasToilet:    c.HasToilet,
		HasWifi:      c.HasWifi,
		HasSockets:   c.HasSockets,
		CanTakeCalls: c.CanTakeCalls,
		CoffeePrice:  c.CoffeePrice,
		AuthorID:     c.AuthorID,
		AuthorName:   c.AuthorName(),
	}
}

func CafeResponses(cafes []Cafe) []CafeResponse {
	out := make([]CafeResponse, 0, len(cafes))
	for i := range cafes {
		out = append(out, cafes[i].Response())
	}
	return out
}
