package partner

import "orderflow/internal/entities"

func ToDomain(model *PartnerDB) *entities.DeliveryPartner {
	return &entities.DeliveryPartner{
		ID:        model.ID,
		Name:      model.Name,
		Phone:     model.Phone,
		Status:    entities.PartnerStatusType(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func FromDomainModify(modify *entities.PartnerModify) *PartnerModifyDB {
	model := &PartnerModifyDB{
		ID:    modify.ID,
		Name:  modify.Name,
		Phone: modify.Phone,
	}
	if modify.Status != nil {
		status := modify.Status.String()
		model.Status = &status
	}
	return model
}
