package partner

import "time"

type PartnerDB struct {
	ID        string
	Name      string
	Phone     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PartnerModifyDB struct {
	ID     *string
	Name   *string
	Phone  *string
	Status *string
}
