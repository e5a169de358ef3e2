package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rerrors "github.com/queryshv/rad-report/internal/errors"
	"github.com/queryshv/rad-report/internal/export"
	"github.com/queryshv/rad-report/internal/importer"
	"github.com/queryshv/rad-report/internal/schedule"
)

type loginRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	Admin bool `json:"admin"`
}

type importResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// login answers POST /api/admin/login, setting the session cookie on a
// matching password.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, rerrors.BadRequest("Invalid login request"))
		return
	}
	if s.Sessions == nil {
		s.fail(c, rerrors.Unauthorized())
		return
	}
	token, ok := s.Sessions.Login(req.Password)
	if !ok {
		s.log.Warn("admin login rejected", zap.String("client", c.ClientIP()))
		s.fail(c, &rerrors.Error{Code: rerrors.CodeUnauthorized, Message: "Incorrect password"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.Sessions.TTL().Seconds()), "/", "", s.SecureCookies, true)
	c.JSON(http.StatusOK, sessionResponse{Admin: true})
}

// logout answers POST /api/admin/logout.
func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && s.Sessions != nil {
		s.Sessions.Logout(token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.SecureCookies, true)
	c.JSON(http.StatusOK, sessionResponse{Admin: false})
}

// session answers GET /api/admin/session.
func (s *Server) session(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	c.JSON(http.StatusOK, sessionResponse{Admin: s.Sessions != nil && s.Sessions.Valid(token)})
}

// listEntries answers GET /api/admin/schedule with the record in date order.
func (s *Server) listEntries(c *gin.Context) {
	rec, err := s.Store.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec.Entries())
}

// putEntry answers PUT /api/admin/schedule/:date. The body may move the
// entry to another date.
func (s *Server) putEntry(c *gin.Context) {
	oldKey := c.Param("date")
	var e schedule.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		s.fail(c, rerrors.BadRequest("Invalid schedule entry"))
		return
	}
	if e.Date == "" {
		e.Date = oldKey
	}
	if err := s.Store.Put(c.Request.Context(), oldKey, e); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, msgScheduleUpdated)
}

// deleteEntry answers DELETE /api/admin/schedule/:date.
func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.Store.Delete(c.Request.Context(), c.Param("date")); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, msgScheduleUpdated)
}

// importWorkbook answers POST /api/admin/schedule/import with a multipart
// "file" holding an .xlsx or .xls rota.
func (s *Server) importWorkbook(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.fail(c, rerrors.BadRequest("A spreadsheet must be uploaded in the \"file\" field"))
		return
	}
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".xlsx", ".xls":
	default:
		s.fail(c, rerrors.BadRequest("Only .xlsx and .xls files can be imported"))
		return
	}
	if fh.Size > maxUploadBytes {
		s.fail(c, rerrors.BadRequest("Spreadsheet is too large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.fail(c, rerrors.BadRequest("Failed to read uploaded file"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		s.fail(c, rerrors.BadRequest("Failed to read uploaded file"))
		return
	}

	res, err := importer.ReadEntries(fh.Filename, data, s.log)
	if err != nil {
		s.fail(c, rerrors.BadRequest("The file could not be read as a spreadsheet").WithCause(err))
		return
	}
	if res.Empty() {
		c.JSON(http.StatusOK, importResponse{Message: importer.NoEntriesMessage, Skipped: len(res.Skipped)})
		return
	}
	if err := s.Store.UpsertMany(c.Request.Context(), res.Entries); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, importResponse{
		Message:  msgScheduleUpdated,
		Imported: len(res.Entries),
		Skipped:  len(res.Skipped),
	})
}

// exportXLSX answers GET /api/admin/schedule/export.
func (s *Server) exportXLSX(c *gin.Context) {
	s.sendExport(c, export.XLSXFileName, export.XLSXContentType, export.XLSX)
}

// exportPDF answers GET /api/admin/schedule/export.pdf.
func (s *Server) exportPDF(c *gin.Context) {
	s.sendExport(c, export.PDFFileName, export.PDFContentType, func(entries []schedule.Entry) ([]byte, error) {
		return export.PDF(entries, s.PDF)
	})
}

func (s *Server) sendExport(c *gin.Context, name, contentType string, render func([]schedule.Entry) ([]byte, error)) {
	rec, err := s.Store.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := render(rec.Entries())
	if err != nil {
		s.fail(c, fmt.Errorf("render %s: %w", name, err))
		return
	}
	attach(c, name)
	c.Data(http.StatusOK, contentType, data)
}

// attach marks the response as a download named name.
func attach(c *gin.Context, name string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
