package entities

import "time"

type DeliveryPartner struct {
	ID        string
	Name      string
	Phone     string
	Status    PartnerStatusType
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PartnerStatusType string

const (
	PartnerAvailable PartnerStatusType = "available"
	PartnerBusy      PartnerStatusType = "busy"
	PartnerOffline   PartnerStatusType = "offline"
)

func (t PartnerStatusType) String() string {
	return string(t)
}

type PartnerModify struct {
	ID     *string
	Name   *string
	Phone  *string
	Status *PartnerStatusType
}
