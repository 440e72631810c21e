package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
)

var ErrSessionNotFound = errors.New("registration session not found") // 404

type WizardStore interface {
	Get(ctx context.Context, id string) (*domain.Wizard, error)
	Save(ctx context.Context, id string, w *domain.Wizard) error
	Delete(ctx context.Context, id string) error
}

// RegistrationService drives wizards kept in the session store. Every call
// loads the wizard, applies one step and saves it back.
type RegistrationService struct {
	Sessions  WizardStore
	Submitter domain.Submitter
	Producer  events.Publisher
}

type Session struct {
	ID     string
	Wizard *domain.Wizard
}

func (s *RegistrationService) Start(ctx context.Context, role string) (*Session, error) {
	r := domain.RoleVendor
	if role != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, err
		}
		r = parsed
	}

	sess := &Session{ID: uuid.NewString(), Wizard: domain.NewWizard(r)}
	if err := s.Sessions.Save(ctx, sess.ID, sess.Wizard); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RegistrationService) Get(ctx context.Context, id string) (*Session, error) {
	w, err := s.Sessions.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Wizard: w}, nil
}

func (s *RegistrationService) UpdateFields(ctx context.Context, id string, fields map[string]string) (*Session, error) {
	return s.apply(ctx, id, func(w *domain.Wizard) error { return w.Draft.SetFields(fields) })
}

func (s *RegistrationService) SetRole(ctx context.Context, id, role string) (*Session, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, func(w *domain.Wizard) error { return w.Draft.SetRole(r) })
}

func (s *RegistrationService) Attach(ctx context.Context, id, field string, a domain.Attachment) (*Session, error) {
	return s.apply(ctx, id, func(w *domain.Wizard) error { return w.Draft.Attach(field, a) })
}

func (s *RegistrationService) Next(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, func(w *domain.Wizard) error { return w.Next() })
}

func (s *RegistrationService) Prev(ctx context.Context, id string) (*Session, error) {
	return s.apply(ctx, id, func(w *domain.Wizard) error {
		w.Prev()
		return nil
	})
}

// Submit hands the finished draft to the Submitter. The session is dropped
// only after the backend accepts it.
func (s *RegistrationService) Submit(ctx context.Context, id string) (domain.Receipt, error) {
	l := logging.FromContext(ctx)

	sess, err := s.Get(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}

	receipt, err := sess.Wizard.Submit(ctx, s.Submitter)
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.Sessions.Delete(ctx, id); err != nil {
		l.Error("delete_registration_session_error", "session_id", id, "error", err)
	}

	d := sess.Wizard.Draft
	event := map[string]any{
		"type":       "user_registered",
		"account_id": receipt.ID,
		"role":       d.Role,
		"name":       d.Base.Name,
		"phone":      d.Base.Phone,
		"city":       d.Base.Location.City,
	}
	if d.Supplier != nil {
		event["business_name"] = d.Supplier.BusinessName
		event["supplier_type"] = d.Supplier.SupplierType
	}
	events.Publish(ctx, s.Producer, l, events.TopicUsers, receipt.ID, event)
	return receipt, nil
}

// apply saves the wizard only when fn succeeds, so a rejected step leaves
// the stored draft as it was.
func (s *RegistrationService) apply(ctx context.Context, id string, fn func(*domain.Wizard) error) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess.Wizard); err != nil {
		return sess, err
	}
	if err := s.Sessions.Save(ctx, id, sess.Wizard); err != nil {
		return nil, err
	}
	return sess, nil
}
