package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	rerrors "github.com/queryshv/rad-report/internal/errors"
	"github.com/queryshv/rad-report/internal/schedule"
)

const msgScheduleUpdated = "Schedule updated successfully"

// getSchedule answers GET /api/schedule with the whole record.
func (s *Server) getSchedule(c *gin.Context) {
	rec, err := s.Store.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// postSchedule answers POST /api/schedule. An object body replaces the
// record; an array body is merged entry by entry.
func (s *Server) postSchedule(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.fail(c, rerrors.BadRequest("Failed to read request body"))
		return
	}
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		s.fail(c, rerrors.BadRequest("Request body must be JSON"))
		return
	}

	ctx := c.Request.Context()
	switch body[0] {
	case '[':
		entries, err := decodeEntries(body)
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := s.Store.UpsertMany(ctx, entries); err != nil {
			s.fail(c, err)
			return
		}
	case '{':
		rec, err := decodeRecord(body)
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := s.Store.Replace(ctx, rec); err != nil {
			s.fail(c, err)
			return
		}
	default:
		s.fail(c, rerrors.BadRequest("Request body must be a schedule object or an array of entries"))
		return
	}
	s.ok(c, msgScheduleUpdated)
}

// decodeRecord reads a {date-key: operator} object, reporting every value
// that is not a string.
func decodeRecord(body []byte) (schedule.Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, rerrors.BadRequest("Invalid full schedule object format")
	}
	rec := make(schedule.Record, len(raw))
	var issues []rerrors.Issue
	for k, v := range raw {
		var op string
		if err := json.Unmarshal(v, &op); err != nil {
			issues = append(issues, rerrors.Issue{Path: k, Message: "Operator name must be a string"})
			continue
		}
		rec[k] = op
	}
	if len(issues) > 0 {
		sort.Slice(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
		return nil, rerrors.Validation("Invalid full schedule object format", issues)
	}
	return rec, nil
}

// decodeEntries reads an array of {date, operator} objects.
func decodeEntries(body []byte) ([]schedule.Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, rerrors.BadRequest("Invalid schedule entry array format")
	}
	entries := make([]schedule.Entry, len(raw))
	var issues []rerrors.Issue
	for i, item := range raw {
		if err := json.Unmarshal(item, &entries[i]); err != nil {
			issues = append(issues, rerrors.Issue{
				Path:    strconv.Itoa(i),
				Message: "Entry must be an object with string date and operator",
			})
		}
	}
	if len(issues) > 0 {
		return nil, rerrors.Validation("Invalid schedule entry array format", issues)
	}
	return entries, nil
}
