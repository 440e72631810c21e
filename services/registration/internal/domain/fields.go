package domain

import (
	"fmt"
	"strings"
)

// Flat keys shared by field updates and the submission payload.
const (
	KeyName     = "name"
	KeyPhone    = "phone"
	KeyEmail    = "email"
	KeyPassword = "password"
	KeyRole     = "role"

	KeyAddress = "location.address"
	KeyCity    = "location.city"
	KeyPincode = "location.pincode"

	KeyStallName = "vendor.stall_name"
	KeyFoodType  = "vendor.food_type"
	KeyShopImage = "vendor.shop_image"

	KeySupplierType = "supplier.type"
	KeyBusinessName = "supplier.business_name"
	KeyTaxID        = "supplier.tax_id"
	KeySamplePhoto  = "supplier.sample_photo"
	KeyIDProof      = "supplier.id_proof"
)

// SetFields applies flat key updates. Unknown keys and keys of the inactive
// role are rejected before anything is written.
func (d *Draft) SetFields(fields map[string]string) error {
	refs := make(map[*string]string, len(fields))
	for k, v := range fields {
		ref, err := d.field(k)
		if err != nil {
			return err
		}
		if k != KeyPassword {
			v = strings.TrimSpace(v)
		}
		refs[ref] = v
	}
	for ref, v := range refs {
		*ref = v
	}
	return nil
}

// Fields returns every scalar value of the draft under its flat key.
func (d *Draft) Fields() map[string]string {
	out := map[string]string{
		KeyName:     d.Base.Name,
		KeyPhone:    d.Base.Phone,
		KeyEmail:    d.Base.Email,
		KeyPassword: d.Base.Password,
		KeyRole:     string(d.Role),
		KeyAddress:  d.Base.Location.Address,
		KeyCity:     d.Base.Location.City,
		KeyPincode:  d.Base.Location.Pincode,
	}
	switch {
	case d.Vendor != nil:
		out[KeyStallName] = d.Vendor.StallName
		out[KeyFoodType] = d.Vendor.FoodType
	case d.Supplier != nil:
		out[KeySupplierType] = d.Supplier.SupplierType
		out[KeyBusinessName] = d.Supplier.BusinessName
		out[KeyTaxID] = d.Supplier.TaxID
	}
	return out
}

func (d *Draft) field(k string) (*string, error) {
	switch k {
	case KeyName:
		return &d.Base.Name, nil
	case KeyPhone:
		return &d.Base.Phone, nil
	case KeyEmail:
		return &d.Base.Email, nil
	case KeyPassword:
		return &d.Base.Password, nil
	case KeyAddress:
		return &d.Base.Location.Address, nil
	case KeyCity:
		return &d.Base.Location.City, nil
	case KeyPincode:
		return &d.Base.Location.Pincode, nil
	}

	if d.Vendor != nil {
		switch k {
		case KeyStallName:
			return &d.Vendor.StallName, nil
		case KeyFoodType:
			return &d.Vendor.FoodType, nil
		}
	}
	if d.Supplier != nil {
		switch k {
		case KeySupplierType:
			return &d.Supplier.SupplierType, nil
		case KeyBusinessName:
			return &d.Supplier.BusinessName, nil
		case KeyTaxID:
			return &d.Supplier.TaxID, nil
		}
	}
	return nil, fmt.Errorf("%s for role %s: %w", k, d.Role, ErrUnknownField)
}
