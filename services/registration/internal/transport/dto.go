package transport

import (
	"time"

	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
)

type StartRequest struct {
	Role string `json:"role"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

// UpdateFieldsRequest carries flat keys such as "name" or "location.city".
type UpdateFieldsRequest map[string]string

type AttachmentInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type WizardResponse struct {
	ID          string                     `json:"id"`
	Step        int                        `json:"step"`
	TotalSteps  int                        `json:"total_steps"`
	Progress    int                        `json:"progress"`
	Role        domain.Role                `json:"role"`
	Fields      map[string]string          `json:"fields"`
	Attachments map[string]*AttachmentInfo `json:"attachments"`
}

// NewWizardResponse never echoes the password or the file contents.
func NewWizardResponse(s *service.Session) WizardResponse {
	w := s.Wizard
	fields := w.Draft.Fields()
	delete(fields, domain.KeyPassword)

	atts := map[string]*AttachmentInfo{}
	for field, a := range w.Draft.Attachments() {
		if a == nil {
			atts[field] = nil
			continue
		}
		atts[field] = &AttachmentInfo{Filename: a.Filename, ContentType: a.ContentType, Size: a.Size}
	}

	return WizardResponse{
		ID:          s.ID,
		Step:        w.Step,
		TotalSteps:  w.TotalSteps,
		Progress:    w.Progress(),
		Role:        w.Draft.Role,
		Fields:      fields,
		Attachments: atts,
	}
}

type ValidationErrorResponse struct {
	Step   int      `json:"step"`
	Errors []string `json:"errors"`
}

type AttachmentErrorResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type SubmitResponse struct {
	AccountID string `json:"account_id"`
	Message   string `json:"message"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccountID   string    `json:"account_id"`
	Role        string    `json:"role"`
}
