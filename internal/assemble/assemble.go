// Package assemble builds a deck of full-bleed pictures from slide
// screenshots, one slide per image.
package assemble

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

// Assemble places every existing screenshot of req on its own slide and
// saves the deck. Missing screenshots are logged and skipped.
func Assemble(ctx context.Context, req deckspec.AssembleRequest, logger *zap.Logger) (*deckspec.AssembleResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	req.ApplyDefaults()

	deck := pptx.New()
	cx, cy := pptx.Inch(req.Width), pptx.Inch(req.Height)
	deck.GetLayout().SetCustomLayout(cx, cy)

	for i, path := range req.Screenshots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			logger.Warn("screenshot not found", zap.String("path", path), zap.Int("index", i))
			continue
		}
		pic := pptx.NewDrawingShape()
		if err := pic.SetImageFromFile(path); err != nil {
			return nil, fmt.Errorf("failed to load screenshot %s: %w", path, err)
		}
		pic.SetName(fmt.Sprintf("Screenshot %d", i+1))
		pic.SetBounds(0, 0, cx, cy)
		deck.CreateSlide().AddShape(pic)
	}

	if err := pptx.NewWriter(deck).Save(req.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to save presentation: %w", err)
	}
	logger.Info("deck assembled",
		zap.String("path", req.OutputPath),
		zap.Int("slides", deck.GetSlideCount()),
		zap.Int("skipped", len(req.Screenshots)-deck.GetSlideCount()))

	return &deckspec.AssembleResult{
		Success: true,
		Path:    req.OutputPath,
		Slides:  deck.GetSlideCount(),
		RunID:   runID,
	}, nil
}

// Run reads an AssembleRequest from r, assembles it and writes one JSON
// result line to w. It returns the process exit code.
func Run(ctx context.Context, r io.Reader, w io.Writer, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}
	req, err := deckspec.DecodeAssembleRequest(r)
	if err != nil {
		return emit(w, &deckspec.AssembleResult{Error: err.Error()}, 1)
	}
	res, err := Assemble(ctx, *req, logger)
	if err != nil {
		logger.Error("assembly failed", zap.Error(err))
		return emit(w, &deckspec.AssembleResult{Error: err.Error()}, 1)
	}
	return emit(w, res, 0)
}

func emit(w io.Writer, v any, code int) int {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return 1
	}
	return code
}
