// Package domain implements the three step registration wizard for vendors
// and suppliers: the per-role draft, step validation and the flat payload
// handed to the registration backend.
package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleVendor:
		return RoleVendor, nil
	case RoleSupplier:
		return RoleSupplier, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidRole)
}

type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type Base struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Location Location `json:"location"`
}

type VendorDetails struct {
	StallName string      `json:"stall_name"`
	FoodType  string      `json:"food_type"`
	ShopImage *Attachment `json:"shop_image,omitempty"`
}

type SupplierDetails struct {
	SupplierType string      `json:"supplier_type"`
	BusinessName string      `json:"business_name"`
	TaxID        string      `json:"tax_id"`
	SamplePhoto  *Attachment `json:"sample_photo,omitempty"`
	IDProof      *Attachment `json:"id_proof,omitempty"`
}

// Draft holds the shared base record and exactly one role variant: Vendor
// is set when Role is vendor, Supplier when Role is supplier.
type Draft struct {
	Base     Base             `json:"base"`
	Role     Role             `json:"role"`
	Vendor   *VendorDetails   `json:"vendor,omitempty"`
	Supplier *SupplierDetails `json:"supplier,omitempty"`
}

func NewDraft(role Role) Draft {
	d := Draft{}
	d.switchTo(role)
	return d
}

// SetRole switches the draft to role. Details of the previous role are dropped.
func (d *Draft) SetRole(role Role) error {
	if role != RoleVendor && role != RoleSupplier {
		return fmt.Errorf("%q: %w", role, ErrInvalidRole)
	}
	if role != d.Role {
		d.switchTo(role)
	}
	return nil
}

func (d *Draft) switchTo(role Role) {
	d.Role = role
	d.Vendor, d.Supplier = nil, nil
	switch role {
	case RoleSupplier:
		d.Supplier = &SupplierDetails{}
	default:
		d.Role = RoleVendor
		d.Vendor = &VendorDetails{}
	}
}
