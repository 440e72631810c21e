package domain

import "context"

// Payload is the multipart-ready form of a draft: scalar fields and files
// under flat keys such as "location.address" or "supplier.id_proof".
type Payload struct {
	Fields map[string]string
	Files  map[string]Attachment
}

type Receipt struct {
	ID string `json:"id"`
}

// Submitter delivers a finished registration to the backend.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (Receipt, error)
}

func (d Draft) Payload() Payload {
	p := Payload{Fields: d.Fields(), Files: map[string]Attachment{}}

	for field, a := range d.Attachments() {
		if a == nil {
			continue
		}
		p.Files[attachmentKey(field)] = *a
	}
	return p
}

func attachmentKey(field string) string {
	switch field {
	case FieldShopImage:
		return KeyShopImage
	case FieldSamplePhoto:
		return KeySamplePhoto
	case FieldIDProof:
		return KeyIDProof
	}
	return field
}
