package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	rerrors "github.com/queryshv/rad-report/internal/errors"
	"github.com/queryshv/rad-report/internal/notify"
	"github.com/queryshv/rad-report/internal/report"
)

type previewResponse struct {
	Text       string          `json:"text"`
	Exportable bool            `json:"exportable"`
	Problems   []rerrors.Issue `json:"problems"`
}

type emailRequest struct {
	Draft   report.Draft `json:"draft"`
	To      string       `json:"to"`
	Cc      string       `json:"cc"`
	Subject string       `json:"subject"`
}

// previewReport answers POST /api/report/preview with the composed text of
// a draft, whatever its state.
func (s *Server) previewReport(c *gin.Context) {
	var d report.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		s.fail(c, rerrors.BadRequest("Invalid report draft"))
		return
	}
	if !s.prepare(c, &d) {
		return
	}
	c.JSON(http.StatusOK, previewResponse{
		Text:       report.Compose(&d),
		Exportable: d.Exportable(),
		Problems:   d.Problems(),
	})
}

// downloadReport answers POST /api/report/download with the report as a
// UTF-8 text attachment.
func (s *Server) downloadReport(c *gin.Context) {
	var d report.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		s.fail(c, rerrors.BadRequest("Invalid report draft"))
		return
	}
	if !s.prepare(c, &d) {
		return
	}
	if !d.Exportable() {
		s.fail(c, rerrors.ReportIncomplete())
		return
	}
	attach(c, report.FileName(s.Now()))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Compose(&d)))
}

// emailReport answers POST /api/report/email, sending the report text in
// the body and as an attached file.
func (s *Server) emailReport(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, rerrors.BadRequest("Invalid email request"))
		return
	}
	if strings.TrimSpace(req.To) == "" {
		s.fail(c, rerrors.Validation("Invalid email request", []rerrors.Issue{{Path: "to", Message: "At least one recipient is required"}}))
		return
	}
	if !s.prepare(c, &req.Draft) {
		return
	}
	if !req.Draft.Exportable() {
		s.fail(c, rerrors.ReportIncomplete())
		return
	}
	if !s.Mailer.Enabled() {
		s.fail(c, rerrors.MailerUnavailable(notify.ErrNotConfigured))
		return
	}

	name := report.FileName(s.Now())
	subject := req.Subject
	if subject == "" {
		subject = strings.TrimSuffix(name, ".txt")
	}
	text := report.Compose(&req.Draft)
	err := s.Mailer.Send(c.Request.Context(), notify.Message{
		To:          req.To,
		Cc:          req.Cc,
		Subject:     subject,
		Body:        text,
		Attachment:  []byte(text),
		FileName:    name,
		ContentType: "text/plain; charset=utf-8",
	})
	switch {
	case errors.Is(err, notify.ErrNoRecipients):
		s.fail(c, rerrors.Validation("Invalid email request", []rerrors.Issue{{Path: "to", Message: "At least one recipient is required"}}))
	case err != nil:
		s.fail(c, rerrors.MailerUnavailable(err))
	default:
		s.ok(c, "Report sent to "+req.To)
	}
}

// prepare validates a received draft, applies the toggle rules and derives
// every operator from the current schedule. It reports false after writing
// an error response.
func (s *Server) prepare(c *gin.Context, d *report.Draft) bool {
	if err := d.Validate(); err != nil {
		s.fail(c, err)
		return false
	}
	d.Normalize()
	rec, err := s.Store.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return false
	}
	d.ResolveOperators(rec)
	return true
}
