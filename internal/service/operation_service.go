package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
)

// Named operations accepted by Execute.
const (
	OperationRecomputePercentage     = "recompute_percentage"
	OperationRecomputeAllPercentages = "recompute_all_percentages"
)

// OperationService invokes named store operations with loosely typed arguments.
type OperationService interface {
	Names() []string
	Execute(ctx context.Context, name string, args map[string]interface{}) (dto.OperationResult, error)
}

type operationHandler func(ctx context.Context, args map[string]interface{}) (dto.OperationResult, error)

type operationService struct {
	handlers map[string]operationHandler
	logger   zerolog.Logger
}

// NewOperationService constructs the named operation dispatcher.
func NewOperationService(marks MarksService, logger zerolog.Logger) OperationService {
	s := &operationService{
		logger: logger.With().Str("component", "operation_service").Logger(),
	}
	s.handlers = map[string]operationHandler{
		OperationRecomputePercentage: func(ctx context.Context, args map[string]interface{}) (dto.OperationResult, error) {
			evaluationID, err := uintArg(args, "evaluation_id")
			if err != nil {
				return dto.OperationResult{}, err
			}
			record, err := marks.Recompute(ctx, evaluationID)
			if err != nil {
				return dto.OperationResult{}, err
			}
			return dto.OperationResult{Processed: 1, Record: record}, nil
		},
		OperationRecomputeAllPercentages: func(ctx context.Context, _ map[string]interface{}) (dto.OperationResult, error) {
			processed, err := marks.RecomputeAll(ctx)
			if err != nil {
				return dto.OperationResult{}, err
			}
			return dto.OperationResult{Processed: processed}, nil
		},
	}
	return s
}

func (s *operationService) Names() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *operationService) Execute(ctx context.Context, name string, args map[string]interface{}) (dto.OperationResult, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	handler, ok := s.handlers[name]
	if !ok {
		return dto.OperationResult{}, invalidInput("unknown operation %q, expected one of %s", name, strings.Join(s.Names(), ", "))
	}

	result, err := handler(ctx, args)
	if err != nil {
		s.logger.Debug().Err(err).Str("operation", name).Msg("operation failed")
		return dto.OperationResult{}, err
	}
	result.Name = name
	return result, nil
}

// uintArg reads a positive integer argument that may arrive as a JSON number
// or as a string.
func uintArg(args map[string]interface{}, key string) (uint, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, invalidInput("%s is required", key)
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case uint:
		value = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, invalidInput("%s must be a positive integer", key)
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return 0, invalidInput("%s must be a positive integer", key)
		}
		value = float64(parsed)
	default:
		return 0, invalidInput("%s has unsupported type %s", key, fmt.Sprintf("%T", raw))
	}

	if value <= 0 || value != math.Trunc(value) || value > math.MaxUint32 {
		return 0, invalidInput("%s must be a positive integer", key)
	}
	return uint(value), nil
}
