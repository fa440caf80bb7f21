package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "total_budget",
	"day", "city", "checkpoint", "category", "start_time", "end_time", "cost",
	"next_mode", "next_distance_km",
}

// ExportRow is the JSON form of one export row. Checkpoint fields are
// omitted for a trip without checkpoints.
type ExportRow struct {
	TripID         openapi_types.UUID  `json:"trip_id"`
	TripName       string              `json:"trip_name"`
	TripStartDate  *openapi_types.Date `json:"trip_start_date,omitempty"`
	TotalBudget    int                 `json:"total_budget"`
	Day            *int                `json:"day,omitempty"`
	City           *string             `json:"city,omitempty"`
	Checkpoint     *string             `json:"checkpoint,omitempty"`
	Category       *string             `json:"category,omitempty"`
	StartTime      *string             `json:"start_time,omitempty"`
	EndTime        *string             `json:"end_time,omitempty"`
	Cost           *int                `json:"cost,omitempty"`
	NextMode       *string             `json:"next_mode,omitempty"`
	NextDistanceKm *float64            `json:"next_distance_km,omitempty"`
}

// GetExport handles GET /users/{userID}/export.
// It returns a flat table of every trip and checkpoint.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		writeJSON(w, http.StatusBadRequest, badParamBody("format must be csv or json"))
		return
	}

	rows, err := s.export.Export(r.Context(), userIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the JSON response.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON form.
// A row without a checkpoint leaves every checkpoint field nil.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	row := ExportRow{
		TripID:      tripID,
		TripName:    r.TripName,
		TotalBudget: r.TotalBudget,
	}
	if r.TripStartDate != "" {
		d := mustParseDate(r.TripStartDate)
		row.TripStartDate = &d
	}
	if r.Checkpoint == "" && r.Day == 0 {
		return row
	}

	row.Day = &r.Day
	row.City = &r.City
	row.Checkpoint = &r.Checkpoint
	row.Category = &r.Category
	row.StartTime = &r.StartTime
	row.EndTime = &r.EndTime
	row.Cost = &r.Cost
	if r.NextMode != "" {
		row.NextMode = &r.NextMode
		row.NextDistanceKm = &r.NextDistanceKm
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A row without a checkpoint leaves every checkpoint column empty.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	rec := []string{
		r.TripID,
		r.TripName,
		r.TripStartDate,
		strconv.Itoa(r.TotalBudget),
		"", "", "", "", "", "", "", "", "",
	}
	if r.Checkpoint == "" && r.Day == 0 {
		return rec
	}
	rec[4] = strconv.Itoa(r.Day)
	rec[5] = r.City
	rec[6] = r.Checkpoint
	rec[7] = r.Category
	rec[8] = r.StartTime
	rec[9] = r.EndTime
	rec[10] = strconv.Itoa(r.Cost)
	if r.NextMode != "" {
		rec[11] = r.NextMode
		rec[12] = strconv.FormatFloat(r.NextDistanceKm, 'f', -1, 64)
	}
	return rec
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
