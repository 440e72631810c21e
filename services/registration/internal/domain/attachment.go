package domain

import (
	"fmt"
	"mime"
	"strings"
)

const MaxAttachmentSize = 5 << 20

// Upload field names.
const (
	FieldShopImage   = "shop_image"
	FieldSamplePhoto = "sample_photo"
	FieldIDProof     = "id_proof"
)

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"data"`
}

// Attach stores a onto field, replacing any earlier file. Oversized files,
// wrong content types and fields of the inactive role leave the draft untouched.
func (d *Draft) Attach(field string, a Attachment) error {
	slot, allowPDF, err := d.slot(field)
	if err != nil {
		return err
	}

	if a.Size > MaxAttachmentSize || int64(len(a.Data)) > MaxAttachmentSize {
		return &AttachmentError{Field: field, Reason: fmt.Sprintf("file exceeds %d MiB", MaxAttachmentSize>>20)}
	}
	mt := mediaType(a.ContentType)
	if !strings.HasPrefix(mt, "image/") && !(allowPDF && mt == "application/pdf") {
		reason := "file must be an image"
		if allowPDF {
			reason = "file must be an image or a PDF"
		}
		return &AttachmentError{Field: field, Reason: reason}
	}

	a.ContentType = mt
	if a.Size == 0 {
		a.Size = int64(len(a.Data))
	}
	*slot = &a
	return nil
}

// Attachments returns the files of the active role keyed by upload field.
func (d *Draft) Attachments() map[string]*Attachment {
	out := map[string]*Attachment{}
	switch {
	case d.Vendor != nil:
		out[FieldShopImage] = d.Vendor.ShopImage
	case d.Supplier != nil:
		out[FieldSamplePhoto] = d.Supplier.SamplePhoto
		out[FieldIDProof] = d.Supplier.IDProof
	}
	return out
}

func (d *Draft) slot(field string) (slot **Attachment, allowPDF bool, err error) {
	switch {
	case field == FieldShopImage && d.Vendor != nil:
		return &d.Vendor.ShopImage, false, nil
	case field == FieldSamplePhoto && d.Supplier != nil:
		return &d.Supplier.SamplePhoto, false, nil
	case field == FieldIDProof && d.Supplier != nil:
		return &d.Supplier.IDProof, true, nil
	}
	return nil, false, &AttachmentError{Field: field, Reason: fmt.Sprintf("no such upload field for role %s", d.Role)}
}

func mediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}
