package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/observability"
	"github.com/noah-isme/projeval-api/internal/repository"
)

const (
	defaultImportMaxBytes = 5 * 1024 * 1024
	zipMIME               = "application/zip"
)

// Percentage derivation triggers.
const (
	triggerWrite    = "write"
	triggerOnDemand = "on_demand"
	triggerBulk     = "bulk"
	triggerImport   = "import"
)

// MarksService is the access point for marks and the only caller of the
// percentage derivation. Every path that writes operands re-derives the
// percentage inside the same store transaction.
type MarksService interface {
	List(ctx context.Context) ([]models.Marks, error)
	Get(ctx context.Context, evaluationID uint) (models.Marks, error)
	Create(ctx context.Context, req dto.MarksCreateRequest) (models.Marks, error)
	Update(ctx context.Context, evaluationID uint, req dto.MarksUpdateRequest) (models.Marks, error)
	Delete(ctx context.Context, evaluationID uint) error
	Recompute(ctx context.Context, evaluationID uint) (models.Marks, error)
	RecomputeAll(ctx context.Context) (int64, error)
	Import(ctx context.Context, r io.Reader) (dto.MarksImportResult, error)
}

type marksService struct {
	repo      repository.MarksRepository
	validator *validator.Validate
	observer  entityObserver
	maxImport int64
	logger    zerolog.Logger
}

// NewMarksService constructs the marks service.
func NewMarksService(repo repository.MarksRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) MarksService {
	logger = logger.With().Str("component", "marks_service").Logger()
	return &marksService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(models.EntityMarks, hooks, logger),
		maxImport: defaultImportMaxBytes,
		logger:    logger,
	}
}

func (s *marksService) List(ctx context.Context) ([]models.Marks, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	marks, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return marks, nil
}

func (s *marksService) Get(ctx context.Context, evaluationID uint) (models.Marks, error) {
	ctx, span := s.observer.start(ctx, opGet, evaluationID)
	defer span.End()

	if evaluationID == 0 {
		return models.Marks{}, s.observer.fail(span, opGet, 0, invalidInput("evaluation id is required"))
	}
	marks, err := s.repo.GetByEvaluation(ctx, evaluationID)
	if err != nil {
		return models.Marks{}, s.observer.fail(span, opGet, evaluationID, err)
	}
	s.observer.succeeded(opGet)
	return marks, nil
}

func (s *marksService) Create(ctx context.Context, req dto.MarksCreateRequest) (models.Marks, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.EvaluationID)
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return models.Marks{}, s.observer.fail(span, opCreate, 0, err)
	}
	if err := validateOperand("marks_obtained", req.MarksObtained); err != nil {
		return models.Marks{}, s.observer.fail(span, opCreate, 0, err)
	}
	if err := validateOperand("max_marks", req.MaxMarks); err != nil {
		return models.Marks{}, s.observer.fail(span, opCreate, 0, err)
	}

	marks := models.Marks{
		EvaluationID:  req.EvaluationID,
		MarksObtained: req.MarksObtained,
		MaxMarks:      req.MaxMarks,
	}
	if err := s.repo.Create(ctx, &marks); err != nil {
		return models.Marks{}, s.observer.fail(span, opCreate, req.EvaluationID, err)
	}

	observability.PercentageRecomputes().WithLabelValues(triggerWrite).Inc()
	span.SetAttributes(attribute.Bool("marks.percentage_defined", marks.HasPercentage()))
	s.observer.committed(ctx, opCreate, marks.EvaluationID, marksMetadata(marks))
	return marks, nil
}

func (s *marksService) Update(ctx context.Context, evaluationID uint, req dto.MarksUpdateRequest) (models.Marks, error) {
	ctx, span := s.observer.start(ctx, opUpdate, evaluationID)
	defer span.End()

	if evaluationID == 0 {
		return models.Marks{}, s.observer.fail(span, opUpdate, 0, invalidInput("evaluation id is required"))
	}
	if req.Empty() {
		return models.Marks{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}
	if err := validateOperand("marks_obtained", req.MarksObtained.Value); err != nil {
		return models.Marks{}, s.observer.fail(span, opUpdate, 0, err)
	}
	if err := validateOperand("max_marks", req.MaxMarks.Value); err != nil {
		return models.Marks{}, s.observer.fail(span, opUpdate, 0, err)
	}

	marks, err := s.repo.Update(ctx, evaluationID, func(current *models.Marks) {
		if req.MarksObtained.Set {
			current.MarksObtained = req.MarksObtained.Value
		}
		if req.MaxMarks.Set {
			current.MaxMarks = req.MaxMarks.Value
		}
	})
	if err != nil {
		return models.Marks{}, s.observer.fail(span, opUpdate, evaluationID, err)
	}

	observability.PercentageRecomputes().WithLabelValues(triggerWrite).Inc()
	span.SetAttributes(attribute.Bool("marks.percentage_defined", marks.HasPercentage()))
	s.observer.committed(ctx, opUpdate, evaluationID, marksMetadata(marks))
	return marks, nil
}

func (s *marksService) Delete(ctx context.Context, evaluationID uint) error {
	ctx, span := s.observer.start(ctx, opDelete, evaluationID)
	defer span.End()

	if evaluationID == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("evaluation id is required"))
	}
	if err := s.repo.Delete(ctx, evaluationID); err != nil {
		return s.observer.fail(span, opDelete, evaluationID, err)
	}

	s.observer.committed(ctx, opDelete, evaluationID, nil)
	return nil
}

// Recompute reloads the operands stored for evaluationID and re-derives the
// percentage. Calling it repeatedly leaves the same stored value.
func (s *marksService) Recompute(ctx context.Context, evaluationID uint) (models.Marks, error) {
	ctx, span := s.observer.start(ctx, opRecompute, evaluationID)
	defer span.End()

	if evaluationID == 0 {
		return models.Marks{}, s.observer.fail(span, opRecompute, 0, invalidInput("evaluation id is required"))
	}

	marks, err := s.repo.Recompute(ctx, evaluationID)
	if err != nil {
		return models.Marks{}, s.observer.fail(span, opRecompute, evaluationID, err)
	}

	observability.PercentageRecomputes().WithLabelValues(triggerOnDemand).Inc()
	s.observer.committed(ctx, opRecompute, evaluationID, marksMetadata(marks))
	return marks, nil
}

// RecomputeAll reconciles every stored marks row and returns how many were processed.
func (s *marksService) RecomputeAll(ctx context.Context) (int64, error) {
	ctx, span := s.observer.start(ctx, opRecompute, 0)
	defer span.End()

	processed, err := s.repo.RecomputeAll(ctx)
	if err != nil {
		return 0, s.observer.fail(span, opRecompute, 0, err)
	}

	observability.PercentageRecomputes().WithLabelValues(triggerBulk).Add(float64(processed))
	span.SetAttributes(attribute.Int64("marks.processed", processed))
	s.observer.committed(ctx, opRecompute, 0, map[string]interface{}{"processed": processed})
	return processed, nil
}

// Import loads marks from the first sheet of an XLSX workbook. The first row
// is a header; the columns are evaluation_id, marks_obtained and max_marks. A
// blank operand cell stores null. Rows are written all or nothing.
func (s *marksService) Import(ctx context.Context, r io.Reader) (dto.MarksImportResult, error) {
	ctx, span := s.observer.start(ctx, opImport, 0)
	defer span.End()

	if r == nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("file is required"))
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(r, s.maxImport+1)); err != nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("read upload: %v", err))
	}
	if int64(buf.Len()) > s.maxImport {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("file exceeds %d bytes", s.maxImport))
	}

	detected := mimetype.Detect(buf.Bytes())
	span.SetAttributes(attribute.String("import.detected_mime", detected.String()))
	if !isZipFamily(detected) {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("file must be an xlsx workbook, got %s", detected.String()))
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("open workbook: %v", err))
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("workbook has no sheets"))
	}
	sheet := sheets[0]

	cells, err := workbook.GetRows(sheet)
	if err != nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("read sheet %q: %v", sheet, err))
	}

	rows, err := parseMarksRows(cells)
	if err != nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, err)
	}
	if len(rows) == 0 {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, invalidInput("sheet %q has no data rows", sheet))
	}

	affected, err := s.repo.UpsertBatch(ctx, rows)
	if err != nil {
		return dto.MarksImportResult{}, s.observer.fail(span, opImport, 0, err)
	}

	observability.PercentageRecomputes().WithLabelValues(triggerImport).Add(float64(affected))
	observability.ImportedMarksRows().Add(float64(affected))
	span.SetAttributes(attribute.Int64("import.rows", affected))
	s.observer.committed(ctx, opImport, 0, map[string]interface{}{"sheet": sheet, "rows": affected})

	return dto.MarksImportResult{Sheet: sheet, Rows: affected}, nil
}

// parseMarksRows converts sheet cells into marks rows. Row numbers in errors
// are the spreadsheet's 1-based numbers.
func parseMarksRows(cells [][]string) ([]models.Marks, error) {
	rows := make([]models.Marks, 0, len(cells))
	seen := make(map[uint]int, len(cells))

	for i, record := range cells {
		if i == 0 || blankRecord(record) {
			continue
		}
		line := i + 1

		rawID := cellAt(record, 0)
		if rawID == "" {
			return nil, invalidInput("row %d: evaluation_id is required", line)
		}
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil || id == 0 {
			return nil, invalidInput("row %d: evaluation_id %q is not a positive integer", line, rawID)
		}
		if previous, ok := seen[uint(id)]; ok {
			return nil, invalidInput("row %d: evaluation_id %d already appears on row %d", line, id, previous)
		}
		seen[uint(id)] = line

		obtained, err := parseOperand(cellAt(record, 1))
		if err != nil {
			return nil, invalidInput("row %d: marks_obtained: %v", line, err)
		}
		maxMarks, err := parseOperand(cellAt(record, 2))
		if err != nil {
			return nil, invalidInput("row %d: max_marks: %v", line, err)
		}

		rows = append(rows, models.Marks{
			EvaluationID:  uint(id),
			MarksObtained: obtained,
			MaxMarks:      maxMarks,
		})
	}
	return rows, nil
}

func parseOperand(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errors.New("must be a finite number")
	}
	if value < 0 {
		return nil, errors.New("must not be negative")
	}
	return &value, nil
}

func validateOperand(field string, value *float64) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return invalidInput("%s must be a finite number", field)
	}
	if *value < 0 {
		return invalidInput("%s must not be negative", field)
	}
	return nil
}

func cellAt(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isZipFamily(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(zipMIME) {
			return true
		}
	}
	return false
}

func marksMetadata(marks models.Marks) map[string]interface{} {
	return map[string]interface{}{
		"marks_obtained": marks.MarksObtained,
		"max_marks":      marks.MaxMarks,
		"percentage":     marks.Percentage,
	}
}
