package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(ct string, size int) Attachment {
	return Attachment{Filename: "f", ContentType: ct, Size: int64(size), Data: make([]byte, size)}
}

func TestAttach_RejectsOversized(t *testing.T) {
	d := NewDraft(RoleSupplier)

	err := d.Attach(FieldSamplePhoto, file("image/jpeg", 6<<20))
	var ae *AttachmentError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, FieldSamplePhoto, ae.Field)
	assert.Nil(t, d.Supplier.SamplePhoto)
}

func TestAttach_RejectsPDFOnImageField(t *testing.T) {
	d := NewDraft(RoleSupplier)

	err := d.Attach(FieldSamplePhoto, file("application/pdf", 1<<20))
	var ae *AttachmentError
	require.True(t, errors.As(err, &ae))
	assert.Nil(t, d.Supplier.SamplePhoto)

	v := NewDraft(RoleVendor)
	assert.Error(t, v.Attach(FieldShopImage, file("application/pdf", 1<<20)))
	assert.Nil(t, v.Vendor.ShopImage)
}

func TestAttach_IDProofAcceptsPDFAndImages(t *testing.T) {
	d := NewDraft(RoleSupplier)

	require.NoError(t, d.Attach(FieldIDProof, file("application/pdf", 1<<20)))
	assert.Equal(t, "application/pdf", d.Supplier.IDProof.ContentType)

	require.NoError(t, d.Attach(FieldIDProof, file("image/png; charset=binary", 10)))
	assert.Equal(t, "image/png", d.Supplier.IDProof.ContentType)

	assert.Error(t, d.Attach(FieldIDProof, file("text/plain", 10)))
	assert.Equal(t, "image/png", d.Supplier.IDProof.ContentType)
}

func TestAttach_BoundaryAndOverwrite(t *testing.T) {
	d := NewDraft(RoleVendor)

	require.NoError(t, d.Attach(FieldShopImage, file("image/jpeg", MaxAttachmentSize)))
	first := d.Vendor.ShopImage

	second := file("image/webp", 3)
	second.Filename = "stall.webp"
	require.NoError(t, d.Attach(FieldShopImage, second))
	assert.NotSame(t, first, d.Vendor.ShopImage)
	assert.Equal(t, "stall.webp", d.Vendor.ShopImage.Filename)
}

func TestAttach_InactiveRoleField(t *testing.T) {
	d := NewDraft(RoleVendor)
	err := d.Attach(FieldIDProof, file("application/pdf", 10))
	var ae *AttachmentError
	require.True(t, errors.As(err, &ae))
	assert.Nil(t, d.Supplier)

	assert.Error(t, d.Attach("avatar", file("image/png", 10)))
}

func TestAttach_SizeFromData(t *testing.T) {
	d := NewDraft(RoleVendor)
	require.NoError(t, d.Attach(FieldShopImage, Attachment{ContentType: "image/png", Data: []byte{1, 2, 3}}))
	assert.EqualValues(t, 3, d.Vendor.ShopImage.Size)
}
