package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	LimsFormatCSV  = "csv"
	LimsFormatJSON = "json"
)

// LimsColumns is the column order of exported and imported sample sheets.
var LimsColumns = []string{"sample_code", "name", "matrix", "status", "priority", "received_at", "completed_at", "notes"}

type LimsExport struct {
	Data        []byte
	ContentType string
	Filename    string
}

type ILimsService interface {
	ExportSamples(ctx context.Context, format string) (*LimsExport, error)
	// ImportSamples inserts every valid row in one transaction and reports the rest.
	ImportSamples(ctx context.Context, r io.Reader) (*dto.LimsImportResponse, error)
}

type limsService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewLimsService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) ILimsService {
	return &limsService{uowFactory: uowFactory, audit: audit}
}

func (s *limsService) ExportSamples(ctx context.Context, format string) (*LimsExport, error) {
	format = strings.ToLower(orDefault(format, LimsFormatCSV))
	if format != LimsFormatCSV && format != LimsFormatJSON {
		return nil, serverutils.NewBadRequest("format must be csv or json")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	samples, err := uow.SampleRepository().FindAll(ctx, specification.OrderBy{Field: "received_at"})
	if err != nil {
		return nil, err
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	if format == LimsFormatJSON {
		items := make([]dto.SampleResponse, 0, len(samples))
		for _, sm := range samples {
			items = append(items, toSampleResponse(sm))
		}
		data, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		return &LimsExport{Data: data, ContentType: "application/json", Filename: "samples-" + stamp + ".json"}, nil
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(LimsColumns); err != nil {
		return nil, err
	}
	for _, sm := range samples {
		completed := ""
		if sm.CompletedAt != nil {
			completed = sm.CompletedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			sm.SampleCode,
			sm.Name,
			sm.Matrix,
			sm.Status,
			sm.Priority,
			sm.ReceivedAt.UTC().Format(time.RFC3339),
			completed,
			sm.Notes,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return &LimsExport{Data: buf.Bytes(), ContentType: "text/csv", Filename: "samples-" + stamp + ".csv"}, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

var (
	validStatuses   = toSet(dto.SampleStatuses)
	validPriorities = map[string]bool{"low": true, "normal": true, "high": true, "urgent": true}
)

func (s *limsService) ImportSamples(ctx context.Context, r io.Reader) (*dto.LimsImportResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, serverutils.NewBadRequest("CSV file is empty")
		}
		return nil, serverutils.NewBadRequest("Invalid CSV: " + err.Error())
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"sample_code", "name"} {
		if _, ok := index[required]; !ok {
			return nil, serverutils.NewBadRequest("CSV header is missing column " + required)
		}
	}

	res := &dto.LimsImportResponse{Errors: []dto.LimsRowError{}}
	var (
		parsed []*entity.Sample
		rows   []int
		seen   = map[string]int{}
	)
	now := time.Now()

	// Row numbers count the header as row 1.
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, dto.LimsRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		sample, rowErr := parseLimsRow(get, now)
		if rowErr != nil {
			rowErr.Row = rowNum
			res.Errors = append(res.Errors, *rowErr)
			continue
		}
		if first, dup := seen[sample.SampleCode]; dup {
			res.Errors = append(res.Errors, dto.LimsRowError{
				Row:     rowNum,
				Field:   "sample_code",
				Message: fmt.Sprintf("duplicate of row %d", first),
			})
			continue
		}
		seen[sample.SampleCode] = rowNum
		parsed = append(parsed, sample)
		rows = append(rows, rowNum)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	var fresh []*entity.Sample
	if len(parsed) > 0 {
		codes := make([]string, 0, len(parsed))
		for _, sm := range parsed {
			codes = append(codes, sm.SampleCode)
		}
		existing, err := uow.SampleRepository().FindAll(ctx, specification.BySampleCodes{Codes: codes})
		if err != nil {
			return nil, err
		}
		taken := make(map[string]bool, len(existing))
		for _, sm := range existing {
			taken[sm.SampleCode] = true
		}
		for i, sm := range parsed {
			if taken[sm.SampleCode] {
				res.Errors = append(res.Errors, dto.LimsRowError{Row: rows[i], Field: "sample_code", Message: "sample code already exists"})
				continue
			}
			fresh = append(fresh, sm)
		}
	}

	if len(fresh) > 0 {
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.SampleRepository().CreateBatch(ctx, fresh); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
	}

	res.Imported = len(fresh)
	res.Skipped = len(res.Errors)
	s.audit.Record(ctx, "sample", "", AuditImport, map[string]interface{}{
		"imported": res.Imported,
		"skipped":  res.Skipped,
	})
	return res, nil
}

func parseLimsRow(get func(string) string, now time.Time) (*entity.Sample, *dto.LimsRowError) {
	code := get("sample_code")
	if code == "" {
		return nil, &dto.LimsRowError{Field: "sample_code", Message: "sample_code is required"}
	}
	if len(code) > 64 {
		return nil, &dto.LimsRowError{Field: "sample_code", Message: "sample_code exceeds 64 characters"}
	}
	name := get("name")
	if name == "" {
		return nil, &dto.LimsRowError{Field: "name", Message: "name is required"}
	}

	status := strings.ToLower(orDefault(get("status"), dto.SampleStatusReceived))
	if !validStatuses[status] {
		return nil, &dto.LimsRowError{Field: "status", Message: "unknown status " + status}
	}
	priority := strings.ToLower(orDefault(get("priority"), dto.DefaultSamplePriority))
	if !validPriorities[priority] {
		return nil, &dto.LimsRowError{Field: "priority", Message: "unknown priority " + priority}
	}

	received := now
	if v := get("received_at"); v != "" {
		t, err := parseLimsTime(v)
		if err != nil {
			return nil, &dto.LimsRowError{Field: "received_at", Message: "expected RFC3339 or YYYY-MM-DD"}
		}
		received = t
	}

	sample := &entity.Sample{
		Id:         uuid.New(),
		SampleCode: code,
		Name:       name,
		Matrix:     get("matrix"),
		Priority:   priority,
		ReceivedAt: received,
		Notes:      get("notes"),
		CreatedAt:  now,
	}
	setStatus(sample, status, now)
	if v := get("completed_at"); v != "" && status == dto.SampleStatusComplete {
		t, err := parseLimsTime(v)
		if err != nil {
			return nil, &dto.LimsRowError{Field: "completed_at", Message: "expected RFC3339 or YYYY-MM-DD"}
		}
		sample.CompletedAt = &t
	}
	return sample, nil
}

func parseLimsTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
