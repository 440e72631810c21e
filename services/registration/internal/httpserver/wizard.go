package httpserver

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/transport"
)

type WizardHTTP struct {
	Svc *service.RegistrationService
}

func (h *WizardHTTP) Start(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.start")

	var req transport.StartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "start_registration_error", "invalid body", err)
	}

	sess, err := h.Svc.Start(ctx, req.Role)
	if err != nil {
		return fail(c, l, "start_registration_error", err)
	}

	l.Info("start_registration_success", "session_id", sess.ID, "role", sess.Wizard.Draft.Role)
	return c.JSON(http.StatusCreated, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.get")

	sess, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, l, "get_registration_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) UpdateFields(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.update_fields")

	// BindBody keeps the path id out of the field map.
	var req transport.UpdateFieldsRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return badRequest(l, "update_fields_error", "body must be an object of string fields", err)
	}

	sess, err := h.Svc.UpdateFields(ctx, c.Param("id"), req)
	if err != nil {
		return fail(c, l, "update_fields_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) SetRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.set_role")

	var req transport.SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_role_error", "invalid body", err)
	}

	sess, err := h.Svc.SetRole(ctx, c.Param("id"), req.Role)
	if err != nil {
		return fail(c, l, "set_role_error", err)
	}

	l.Info("set_role_success", "session_id", sess.ID, "role", sess.Wizard.Draft.Role)
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

// Attach reads the multipart "file" part. A part without its own content
// type is sniffed from the first bytes.
func (h *WizardHTTP) Attach(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.attach")
	field := c.Param("field")

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(l, "attach_error", "multipart field file required", err)
	}
	if fh.Size > domain.MaxAttachmentSize {
		return fail(c, l, "attach_error", &domain.AttachmentError{Field: field, Reason: "file exceeds 5 MiB"})
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(l, "attach_error", "cannot read file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxAttachmentSize+1))
	if err != nil {
		return badRequest(l, "attach_error", "cannot read file", err)
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}

	sess, err := h.Svc.Attach(ctx, c.Param("id"), field, domain.Attachment{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	})
	if err != nil {
		return fail(c, l, "attach_error", err)
	}

	l.Info("attach_success", "session_id", sess.ID, "field", field, "size", len(data))
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) Next(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.next")

	sess, err := h.Svc.Next(ctx, c.Param("id"))
	if err != nil {
		return fail(c, l, "next_step_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) Prev(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.prev")

	sess, err := h.Svc.Prev(ctx, c.Param("id"))
	if err != nil {
		return fail(c, l, "prev_step_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewWizardResponse(sess))
}

func (h *WizardHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.submit")
	id := c.Param("id")

	receipt, err := h.Svc.Submit(ctx, id)
	if err != nil {
		return fail(c, l.With("session_id", id), "submit_registration_error", err)
	}

	l.Info("submit_registration_success", "session_id", id, "account_id", receipt.ID)
	return c.JSON(http.StatusCreated, transport.SubmitResponse{
		AccountID: receipt.ID,
		Message:   "Registration successful",
	})
}
