package types

import "time"

// ContainerUnit is the external catalog the units step validates against:
// a unit id may only be linked under the container that owns it.
type ContainerUnit struct {
	ContainerID string    `gorm:"column:container_id;primaryKey" json:"container_id"`
	UnitID      string    `gorm:"column:unit_id;primaryKey" json:"unit_id"`
	Title       string    `gorm:"column:title" json:"title,omitempty"`
	OrderIndex  int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (ContainerUnit) TableName() string { return "container_unit" }
