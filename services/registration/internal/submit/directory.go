package submit

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/trustbasket/pkg/hash"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
)

type AccountCreator interface {
	CreateAccount(ctx context.Context, a *models.Account) error
}

// DirectorySubmitter registers accounts in the local database.
type DirectorySubmitter struct {
	Repo AccountCreator
}

func (s *DirectorySubmitter) Submit(ctx context.Context, p domain.Payload) (domain.Receipt, error) {
	pwHash, err := hash.HashPassword(p.Fields[domain.KeyPassword])
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("hash password: %w", err)
	}

	a := &models.Account{
		Role:         p.Fields[domain.KeyRole],
		Name:         p.Fields[domain.KeyName],
		Phone:        p.Fields[domain.KeyPhone],
		PasswordHash: pwHash,
		Address:      p.Fields[domain.KeyAddress],
		City:         p.Fields[domain.KeyCity],
		Pincode:      p.Fields[domain.KeyPincode],
		StallName:    p.Fields[domain.KeyStallName],
		FoodType:     p.Fields[domain.KeyFoodType],
		SupplierType: p.Fields[domain.KeySupplierType],
		BusinessName: p.Fields[domain.KeyBusinessName],
		TaxID:        p.Fields[domain.KeyTaxID],
	}
	if email := p.Fields[domain.KeyEmail]; email != "" {
		a.Email = &email
	}
	for _, k := range sortedKeys(p.Files) {
		f := p.Files[k]
		a.Documents = append(a.Documents, models.AccountDocument{
			Field:       k,
			Filename:    f.Filename,
			ContentType: f.ContentType,
			Size:        f.Size,
			Data:        f.Data,
		})
	}

	if err := s.Repo.CreateAccount(ctx, a); err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{ID: a.ID.String()}, nil
}
