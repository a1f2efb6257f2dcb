package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/metrics"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/blob"
	"intellilab-gc-be/pkg/chromatogram"
	"intellilab-gc-be/pkg/labevents"
	"intellilab-gc-be/pkg/ocr"
	"intellilab-gc-be/pkg/plot"
)

type IOCRService interface {
	Analyze(ctx context.Context, upload dto.OCRUpload) (*dto.OCRAnalysisResponse, error)
	Show(ctx context.Context, hash string, noise float64) (*dto.OCRAnalysisResponse, error)
	Chromatogram(ctx context.Context, hash string, noise float64, format plot.Format) ([]byte, error)
}

type ocrService struct {
	uowFactory unitofwork.RepositoryFactory
	analyzer   *ocr.Analyzer
	blobs      blob.Store
	audit      IAuditService
	events     labevents.Publisher
	metrics    *metrics.Metrics
	logger     logger.ILogger
	maxUpload  int64
}

func NewOCRService(
	uowFactory unitofwork.RepositoryFactory,
	analyzer *ocr.Analyzer,
	blobs blob.Store,
	audit IAuditService,
	events labevents.Publisher,
	m *metrics.Metrics,
	log logger.ILogger,
	maxUpload int64,
) IOCRService {
	return &ocrService{
		uowFactory: uowFactory,
		analyzer:   analyzer,
		blobs:      blobs,
		audit:      audit,
		events:     events,
		metrics:    m,
		logger:     log,
		maxUpload:  maxUpload,
	}
}

func blobKey(hash, filename string) string {
	return "chromatograms/" + hash + filepath.Ext(filename)
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, ocr.ErrTooLarge):
		return serverutils.NewPayloadTooLarge("Image exceeds the upload size limit")
	case errors.Is(err, ocr.ErrUnsupportedType):
		return serverutils.NewValidation("Unsupported image type", map[string]string{"file": "only PNG and JPG images are accepted"})
	case errors.Is(err, ocr.ErrEmptyUpload):
		return serverutils.NewValidation("Empty upload", map[string]string{"file": "uploaded file is empty"})
	}
	return err
}

func (s *ocrService) Analyze(ctx context.Context, upload dto.OCRUpload) (*dto.OCRAnalysisResponse, error) {
	if err := ocr.ValidateUpload(upload.Filename, upload.ContentType, int64(len(upload.Data)), s.maxUpload); err != nil {
		return nil, uploadError(err)
	}

	hash := ocr.HashKey(upload.Data)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, ok := s.analyzer.Lookup(hash); !ok {
		stored, err := uow.OCRAnalysisRepository().FindByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			s.analyzer.Remember(toOCRAnalysis(stored))
		}
	}

	analysis, cached, err := s.analyzer.Analyze(ctx, upload.Filename, upload.Data)
	s.metrics.ObserveOCRCache(cached)
	if err != nil {
		s.logger.Warn("OCR", "Engine request failed", map[string]interface{}{
			"hash":     hash,
			"filename": upload.Filename,
			"error":    err.Error(),
		})
		return nil, serverutils.NewUpstream("OCR engine request failed", err)
	}

	var record *entity.OCRAnalysis
	if cached {
		record, err = uow.OCRAnalysisRepository().FindByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
	}
	if record == nil {
		record, err = s.store(ctx, uow, upload, analysis)
		if err != nil {
			return nil, err
		}
	}

	s.events.PublishOCRAnalyzed(ctx, hash, len(analysis.Peaks), cached)
	return s.respond(ctx, uow, record, cached, upload.Noise)
}

// store saves the image and the analysis. A stored image for the same hash is reused.
func (s *ocrService) store(ctx context.Context, uow unitofwork.UnitOfWork, upload dto.OCRUpload, analysis *ocr.Analysis) (*entity.OCRAnalysis, error) {
	contentType := ocr.ContentTypeFor(upload.Filename)
	key := blobKey(analysis.Hash, upload.Filename)
	_, err := s.blobs.Put(ctx, key, bytes.NewReader(upload.Data), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"filename": upload.Filename},
	})
	if err != nil && !errors.Is(err, blob.ErrExists) {
		return nil, err
	}

	record := &entity.OCRAnalysis{
		Hash:        analysis.Hash,
		Filename:    upload.Filename,
		ContentType: contentType,
		SizeBytes:   int64(len(upload.Data)),
		BlobKey:     key,
		Engine:      analysis.Engine,
		Peaks:       make([]entity.OCRPeak, len(analysis.Peaks)),
		CreatedAt:   time.Now(),
	}
	for i, p := range analysis.Peaks {
		record.Peaks[i] = entity.OCRPeak(p)
	}
	if err := uow.OCRAnalysisRepository().Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ocr_analysis", record.Hash, AuditAnalyze, map[string]interface{}{
		"filename":   record.Filename,
		"peak_count": len(record.Peaks),
		"blob_key":   key,
	})
	return record, nil
}

func toOCRAnalysis(r *entity.OCRAnalysis) *ocr.Analysis {
	peaks := make([]ocr.Peak, len(r.Peaks))
	for i, p := range r.Peaks {
		peaks[i] = ocr.Peak(p)
	}
	return &ocr.Analysis{Hash: r.Hash, Peaks: peaks, Engine: r.Engine}
}

func tracePeaks(peaks []entity.OCRPeak) []chromatogram.Peak {
	out := make([]chromatogram.Peak, len(peaks))
	for i, p := range peaks {
		out[i] = chromatogram.Peak{RetentionTime: p.RetentionTime, Height: p.Height, Width: p.Width, Name: p.Name}
	}
	return out
}

// identify names each peak after the closest compound whose retention window contains it.
func identify(ctx context.Context, uow unitofwork.UnitOfWork, peaks []entity.OCRPeak) ([]string, error) {
	names := make([]string, len(peaks))
	for i, p := range peaks {
		candidates, err := uow.CompoundRepository().FindAll(ctx, specification.RetentionWindow{RT: p.RetentionTime})
		if err != nil {
			return nil, err
		}
		best := math.Inf(1)
		for _, c := range candidates {
			if d := math.Abs(c.RetentionTime - p.RetentionTime); d < best {
				best = d
				names[i] = c.Name
			}
		}
	}
	return names, nil
}

func (s *ocrService) respond(ctx context.Context, uow unitofwork.UnitOfWork, record *entity.OCRAnalysis, cached bool, noise float64) (*dto.OCRAnalysisResponse, error) {
	names, err := identify(ctx, uow, record.Peaks)
	if err != nil {
		return nil, err
	}

	peaks := make([]dto.OCRPeakResponse, len(record.Peaks))
	for i, p := range record.Peaks {
		peaks[i] = dto.OCRPeakResponse{
			RetentionTime: p.RetentionTime,
			Height:        p.Height,
			Area:          p.Area,
			Width:         p.Width,
			Name:          p.Name,
			CompoundName:  names[i],
		}
	}

	return &dto.OCRAnalysisResponse{
		Hash:        record.Hash,
		Filename:    record.Filename,
		ContentType: record.ContentType,
		SizeBytes:   record.SizeBytes,
		Engine:      record.Engine,
		Cached:      cached,
		Peaks:       peaks,
		Trace: chromatogram.Synthesize(tracePeaks(record.Peaks), chromatogram.Options{
			NoiseLevel: noise,
			Seed:       chromatogram.SeedFromHash(record.Hash),
		}),
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *ocrService) find(ctx context.Context, uow unitofwork.UnitOfWork, hash string) (*entity.OCRAnalysis, error) {
	if len(hash) != ocr.HashLength {
		return nil, serverutils.NewBadRequest("Invalid analysis hash")
	}
	record, err := uow.OCRAnalysisRepository().FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, serverutils.NewNotFound("OCR analysis")
	}
	return record, nil
}

func (s *ocrService) Show(ctx context.Context, hash string, noise float64) (*dto.OCRAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := s.find(ctx, uow, hash)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, uow, record, true, noise)
}

func (s *ocrService) Chromatogram(ctx context.Context, hash string, noise float64, format plot.Format) ([]byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := s.find(ctx, uow, hash)
	if err != nil {
		return nil, err
	}
	names, err := identify(ctx, uow, record.Peaks)
	if err != nil {
		return nil, err
	}

	peaks := tracePeaks(record.Peaks)
	for i := range peaks {
		if peaks[i].Name == "" {
			peaks[i].Name = names[i]
		}
	}
	trace := chromatogram.Synthesize(peaks, chromatogram.Options{
		NoiseLevel: noise,
		Seed:       chromatogram.SeedFromHash(record.Hash),
	})
	return chromatogram.Render(trace, peaks, format, 0, 0)
}
