package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"
	"intellilab-gc-be/pkg/calibration"
	"intellilab-gc-be/pkg/plot"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(register ...func(fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()))
	api := app.Group("/api/v1")
	for _, r := range register {
		r(api)
	}
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type stubSampleService struct {
	service.ISampleService
	statusReq *dto.UpdateSampleStatusRequest
	actor     string
	created   *dto.CreateSampleRequest
}

func (s *stubSampleService) UpdateStatus(ctx context.Context, req *dto.UpdateSampleStatusRequest) (*dto.SampleResponse, error) {
	s.statusReq = req
	s.actor = serverutils.ActorFrom(ctx)
	return &dto.SampleResponse{Id: req.Id, Status: req.Status}, nil
}

func (s *stubSampleService) Create(ctx context.Context, req *dto.CreateSampleRequest) (*dto.SampleResponse, error) {
	s.created = req
	return &dto.SampleResponse{Id: uuid.New(), SampleCode: req.SampleCode}, nil
}

func (s *stubSampleService) Show(ctx context.Context, id uuid.UUID) (*dto.SampleResponse, error) {
	return nil, serverutils.NewNotFound("Sample")
}

func TestSampleRoutes(t *testing.T) {
	stub := &stubSampleService{}
	app := newApp(NewSampleController(stub).RegisterRoutes)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/samples/"+id.String()+"/status", bytes.NewBufferString(`{"status":"prep"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, stub.statusReq)
	assert.Equal(t, id, stub.statusReq.Id)
	assert.Equal(t, "anonymous", stub.actor)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/samples/not-a-uuid/status", bytes.NewBufferString(`{"status":"prep"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/samples/"+id.String()+"/status", bytes.NewBufferString(`{"status":"shipped"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSampleCreateValidationAndNotFound(t *testing.T) {
	stub := &stubSampleService{}
	app := newApp(NewSampleController(stub).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/samples", bytes.NewBufferString(`{"name":"Diesel"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Nil(t, stub.created)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/samples", bytes.NewBufferString(`{"sample_code":"S-1","name":"Diesel"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/samples/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type stubCalibrationService struct {
	service.ICalibrationService
	format plot.Format
}

func (s *stubCalibrationService) Plot(ctx context.Context, id uuid.UUID, format plot.Format) ([]byte, error) {
	s.format = format
	return []byte("image"), nil
}

func (s *stubCalibrationService) Validate(ctx context.Context, req *dto.ValidateCalibrationRequest) calibration.Validation {
	return calibration.Validation{IsValid: false, Errors: []string{"At least 3 valid points required"}}
}

func TestCalibrationPlotFormats(t *testing.T) {
	stub := &stubCalibrationService{}
	app := newApp(NewCalibrationController(stub).RegisterRoutes)
	id := uuid.NewString()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/calibration/results/"+id+"/plot.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, plot.FormatPNG, stub.format)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/calibration/results/"+id+"/plot.svg", nil))
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", resp.Header.Get(fiber.HeaderContentType))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/calibration/results/"+id+"/plot.gif", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalibrationValidateAnswersOK(t *testing.T) {
	app := newApp(NewCalibrationController(&stubCalibrationService{}).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calibration/validate", bytes.NewBufferString(`{"points":[]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, false, data["is_valid"])
}

type stubOCRService struct {
	service.IOCRService
	upload dto.OCRUpload
	noise  float64
}

func (s *stubOCRService) Analyze(ctx context.Context, upload dto.OCRUpload) (*dto.OCRAnalysisResponse, error) {
	s.upload = upload
	return &dto.OCRAnalysisResponse{Hash: "abc", Filename: upload.Filename}, nil
}

func (s *stubOCRService) Show(ctx context.Context, hash string, noise float64) (*dto.OCRAnalysisResponse, error) {
	s.noise = noise
	return &dto.OCRAnalysisResponse{Hash: hash}, nil
}

func multipartBody(t *testing.T, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestOCRAnalyzeUpload(t *testing.T) {
	stub := &stubOCRService{}
	app := newApp(NewOCRController(stub).RegisterRoutes)

	body, contentType := multipartBody(t, "trace.png", []byte("\x89PNG data"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/analyze", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "trace.png", stub.upload.Filename)
	assert.Equal(t, []byte("\x89PNG data"), stub.upload.Data)
	assert.Equal(t, defaultNoise, stub.upload.Noise)

	body, contentType = multipartBody(t, "trace.png", []byte("x"), map[string]string{"noise": "loud"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ocr/analyze", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/ocr/analyze", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOCRShowNoiseQuery(t *testing.T) {
	stub := &stubOCRService{}
	app := newApp(NewOCRController(stub).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/ocr/analyses/abc?noise=0.1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.1, stub.noise)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/ocr/analyses/abc?noise=2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type stubLimsService struct {
	service.ILimsService
	imported string
}

func (s *stubLimsService) ExportSamples(ctx context.Context, format string) (*service.LimsExport, error) {
	if format == "xml" {
		return nil, serverutils.NewBadRequest("format must be csv or json")
	}
	return &service.LimsExport{Data: []byte("sample_code\n"), ContentType: "text/csv", Filename: "samples.csv"}, nil
}

func (s *stubLimsService) ImportSamples(ctx context.Context, r io.Reader) (*dto.LimsImportResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.imported = string(data)
	return &dto.LimsImportResponse{Imported: 1, Errors: []dto.LimsRowError{}}, nil
}

func TestLimsRoutes(t *testing.T) {
	stub := &stubLimsService{}
	app := newApp(NewLimsController(stub).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/lims/export/samples", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="samples.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/lims/export/samples?format=xml", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	csvData := "sample_code,name\nS-1,Diesel\n"
	body, contentType := multipartBody(t, "samples.csv", []byte(csvData), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lims/import/samples", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, csvData, stub.imported)
}

type stubAdminService struct {
	service.IAdminService
}

func (s *stubAdminService) GetAuditLogs(ctx context.Context, entityType string, page, limit int) (*dto.PageResponse[dto.AuditLogResponse], error) {
	return &dto.PageResponse[dto.AuditLogResponse]{Items: []dto.AuditLogResponse{}, Page: page, Limit: limit}, nil
}

func signedToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice", "role": role})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	const secret = "test-secret"
	app := newApp(NewAdminController(&stubAdminService{}, secret).RegisterRoutes)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong secret", signedToken(t, "other", "admin"), http.StatusUnauthorized},
		{"analyst role", signedToken(t, secret, "analyst"), http.StatusForbidden},
		{"admin role", signedToken(t, secret, "admin"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit", nil)
			if tt.token != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestSimulatorInlet(t *testing.T) {
	app := newApp(NewSimulatorController(service.NewSimulatorService()).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulator/inlet",
		bytes.NewBufferString(`{"column_flow":1,"split_ratio":50,"septum_purge":3,"mode":"split"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.InDelta(t, 50.0, data["split_flow"], 1e-9)
	assert.InDelta(t, 54.0, data["total_flow"], 1e-9)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/simulator/inlet", bytes.NewBufferString(`{"column_flow":0}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
