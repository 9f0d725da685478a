package models

import "fmt"

// CharacteristicName is a catalog of characteristic labels (e.g. "RAM capacity")
type CharacteristicName struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for the CharacteristicName model
func (CharacteristicName) TableName() string {
	return "characteristic_names"
}

// Characteristic is a typed attribute/value pair describing a Part
type Characteristic struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	CharacteristicNameID uint               `gorm:"not null;index" json:"characteristic_name_id"`
	CharacteristicName   CharacteristicName `gorm:"foreignKey:CharacteristicNameID" json:"characteristic_name"`
	Value                string             `gorm:"not null" json:"value"`
}

// TableName specifies the table name for the Characteristic model
func (Characteristic) TableName() string {
	return "characteristics"
}

// Label renders the characteristic as "Name: Value" for display
func (c Characteristic) Label() string {
	return fmt.Sprintf("%s: %s", c.CharacteristicName.Name, c.Value)
}
