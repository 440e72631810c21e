package domain

import (
	"regexp"
	"unicode/utf8"
)

const (
	MsgNameRequired        = "Name is required"
	MsgPhoneRequired       = "Phone number is required"
	MsgPhoneFormat         = "Phone number must be 10 to 15 digits"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordLength      = "Password must be at least 6 characters"
	MsgAddressRequired     = "Address is required"
	MsgSupplierTypeMissing = "Supplier type is required"
	MsgSamplePhotoMissing  = "Sample photo is required"
	MsgIDProofMissing      = "ID proof is required"

	minPasswordLength = 6
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

// Validate checks every rule of step against the role currently in effect and
// returns all failures in rule order. Unknown steps have no rules.
func Validate(step int, d Draft) []string {
	var msgs []string

	switch step {
	case 1:
		if d.Base.Name == "" {
			msgs = append(msgs, MsgNameRequired)
		}
		switch {
		case d.Base.Phone == "":
			msgs = append(msgs, MsgPhoneRequired)
		case !phonePattern.MatchString(d.Base.Phone):
			msgs = append(msgs, MsgPhoneFormat)
		}
		switch {
		case d.Base.Password == "":
			msgs = append(msgs, MsgPasswordRequired)
		case utf8.RuneCountInString(d.Base.Password) < minPasswordLength:
			msgs = append(msgs, MsgPasswordLength)
		}
	case 2:
		if d.Base.Location.Address == "" {
			msgs = append(msgs, MsgAddressRequired)
		}
		if d.Role == RoleSupplier && (d.Supplier == nil || d.Supplier.SupplierType == "") {
			msgs = append(msgs, MsgSupplierTypeMissing)
		}
	case 3:
		if d.Role == RoleSupplier {
			if d.Supplier == nil || d.Supplier.SamplePhoto == nil {
				msgs = append(msgs, MsgSamplePhotoMissing)
			}
			if d.Supplier == nil || d.Supplier.IDProof == nil {
				msgs = append(msgs, MsgIDProofMissing)
			}
		}
	}
	return msgs
}
