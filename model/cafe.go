package model

// Cafe is one row of the cafes table.
type Cafe struct {
	ID           uint    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string  `json:"name" gorm:"column:name;type:varchar(250);not null;uniqueIndex:idx_cafes_name;check:chk_cafes_name,name <> ''"`
	MapURL       string  `json:"map_url" gorm:"column:map_url;type:varchar(500);not null;check:chk_cafes_map_url,map_url <> ''"`
	ImgURL       string  `json:"img_url" gorm:"column:img_url;type:varchar(500);not null;check:chk_cafes_img_url,img_url <> ''"`
	Location     string  `json:"location" gorm:"column:location;type:varchar(250);not null;index:idx_cafes_location;check:chk_cafes_location,location <> ''"`
	Seats        string  `json:"seats" gorm:"column:seats;type:varchar(250);not null;check:chk_cafes_seats,seats <> ''"`
	HasToilet    bool    `json:"has_toilet" gorm:"column:has_toilet;not null"`
	HasWifi      bool    `json:"has_wifi" gorm:"column:has_wifi;not null"`
	HasSockets   bool    `json:"has_sockets" gorm:"column:has_sockets;not null"`
	CanTakeCalls bool    `json:"can_take_calls" gorm:"column:can_take_calls;not null"`
	CoffeePrice  *string `json:"coffee_price" gorm:"column:coffee_price;type:varchar(250)"`
}

func (Cafe) TableName() string { return "cafes" }
