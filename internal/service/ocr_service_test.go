package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/pkg/blob"
	"intellilab-gc-be/pkg/ocr"
	"intellilab-gc-be/pkg/plot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEngine struct {
	calls atomic.Int32
	err   error
}

func (e *countingEngine) Analyze(ctx context.Context, filename string, data []byte) (*ocr.Analysis, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	return &ocr.Analysis{
		Engine: "test-engine",
		Peaks: []ocr.Peak{
			{RetentionTime: 3.0, Height: 1200, Area: 5400, Width: 0.05},
			{RetentionTime: 7.5, Height: 800, Area: 3100, Width: 0.06},
		},
	}, nil
}

type ocrFixture struct {
	f      *fakeFactory
	engine *countingEngine
	blobs  *blob.MemoryStore
	events *recordingEvents
}

func newOCRFixture() *ocrFixture {
	fx := &ocrFixture{
		f:      newFakeFactory(),
		engine: &countingEngine{},
		blobs:  blob.NewMemory(),
		events: &recordingEvents{},
	}
	fx.f.uow.compounds.items = []*entity.Compound{
		{Name: "Benzene", RetentionTime: 3.05, RtTolerance: 0.1},
		{Name: "Benzene-d6", RetentionTime: 2.92, RtTolerance: 0.1},
	}
	return fx
}

func (fx *ocrFixture) service(maxUpload int64) IOCRService {
	analyzer := ocr.NewAnalyzer(fx.engine, ocr.NewCache(time.Hour))
	log := logger.NewNopLogger()
	return NewOCRService(fx.f, analyzer, fx.blobs, NewAuditService(fx.f, log), fx.events, nil, log, maxUpload)
}

var chromatogramPNG = []byte("\x89PNG\r\n\x1a\nfake chromatogram")

func TestOCRAnalyzeStoresAndIdentifies(t *testing.T) {
	fx := newOCRFixture()
	svc := fx.service(1 << 20)
	ctx := context.Background()

	res, err := svc.Analyze(ctx, dto.OCRUpload{Filename: "run1.png", ContentType: "image/png", Data: chromatogramPNG})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, ocr.HashKey(chromatogramPNG), res.Hash)
	require.Len(t, res.Peaks, 2)
	assert.Equal(t, "Benzene", res.Peaks[0].CompoundName)
	assert.Empty(t, res.Peaks[1].CompoundName)
	assert.NotEmpty(t, res.Trace.Signal)

	info, err := fx.blobs.Head(ctx, "chromatograms/"+res.Hash+".png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Contains(t, fx.f.uow.ocr.byHash, res.Hash)
	assert.Equal(t, []string{"ocr_analysis:analyze"}, fx.f.uow.audits.actions())

	again, err := svc.Analyze(ctx, dto.OCRUpload{Filename: "copy.png", Data: chromatogramPNG})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, "run1.png", again.Filename)
	assert.Equal(t, res.Trace, again.Trace)
	assert.Equal(t, int32(1), fx.engine.calls.Load())
	assert.Len(t, fx.events.ocr, 2)
}

func TestOCRAnalyzeRehydratesFromDatabase(t *testing.T) {
	fx := newOCRFixture()
	ctx := context.Background()

	_, err := fx.service(1<<20).Analyze(ctx, dto.OCRUpload{Filename: "run1.png", Data: chromatogramPNG})
	require.NoError(t, err)

	// A fresh analyzer has an empty memory cache.
	res, err := fx.service(1<<20).Analyze(ctx, dto.OCRUpload{Filename: "run1.png", Data: chromatogramPNG})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, int32(1), fx.engine.calls.Load())
}

func TestOCRAnalyzeRejectsBadUploads(t *testing.T) {
	fx := newOCRFixture()
	svc := fx.service(8)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, dto.OCRUpload{Filename: "notes.pdf", Data: []byte("x")})
	assertAppCode(t, err, 422)

	_, err = svc.Analyze(ctx, dto.OCRUpload{Filename: "run.png"})
	assertAppCode(t, err, 422)

	_, err = svc.Analyze(ctx, dto.OCRUpload{Filename: "run.png", Data: chromatogramPNG})
	assertAppCode(t, err, 413)

	assert.Equal(t, int32(0), fx.engine.calls.Load())
}

func TestOCRAnalyzeEngineFailure(t *testing.T) {
	fx := newOCRFixture()
	fx.engine.err = errors.New("connection refused")
	svc := fx.service(1 << 20)

	_, err := svc.Analyze(context.Background(), dto.OCRUpload{Filename: "run.jpg", Data: chromatogramPNG})
	assertAppCode(t, err, 502)
	assert.Empty(t, fx.f.uow.ocr.byHash)
}

func TestOCRShowAndChromatogram(t *testing.T) {
	fx := newOCRFixture()
	svc := fx.service(1 << 20)
	ctx := context.Background()

	res, err := svc.Analyze(ctx, dto.OCRUpload{Filename: "run1.png", Data: chromatogramPNG})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, res.Hash, 0)
	require.NoError(t, err)
	assert.True(t, shown.Cached)
	assert.Equal(t, res.Peaks, shown.Peaks)

	svg, err := svc.Chromatogram(ctx, res.Hash, 0.01, plot.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	_, err = svc.Show(ctx, "short", 0)
	assertAppCode(t, err, 400)

	_, err = svc.Show(ctx, "0123456789abcdef", 0)
	assertAppCode(t, err, 404)
}
