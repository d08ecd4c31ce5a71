package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/modules/order"
)

// ErrEmptyOrder is returned when a quote is requested for an order without products
var ErrEmptyOrder = errors.New("order has no products")

// Submission describes a stored quote request
type Submission struct {
	Reference   string    `json:"reference"`
	TableKey    string    `json:"table_key"`
	TextKey     string    `json:"text_key"`
	Lines       int       `json:"lines"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Service turns orders into stored quote requests
type Service struct {
	uploader Uploader
	prefix   string
	log      zerolog.Logger
}

// NewService creates a quote service storing artifacts under prefix
func NewService(uploader Uploader, prefix string, log zerolog.Logger) *Service {
	return &Service{
		uploader: uploader,
		prefix:   prefix,
		log:      log.With().Str("service", "quotes").Logger(),
	}
}

// Submit stores the product table and the quote text of o under a fresh reference
func (s *Service) Submit(ctx context.Context, o order.Order) (*Submission, error) {
	if len(o.Products) == 0 {
		return nil, ErrEmptyOrder
	}

	reference := uuid.New().String()
	sub := &Submission{
		Reference:   reference,
		TableKey:    s.prefix + reference + ".tsv",
		TextKey:     s.prefix + reference + ".txt",
		Lines:       len(o.Products),
		SubmittedAt: time.Now(),
	}

	if err := s.uploader.Upload(ctx, sub.TableKey, "text/tab-separated-values; charset=utf-8", []byte(order.FormatTSV(o.Products))); err != nil {
		return nil, fmt.Errorf("failed to store product table: %w", err)
	}
	if err := s.uploader.Upload(ctx, sub.TextKey, "text/plain; charset=utf-8", []byte(order.QuoteText(o, reference))); err != nil {
		return nil, fmt.Errorf("failed to store quote text: %w", err)
	}

	s.log.Info().
		Str("reference", reference).
		Int("lines", sub.Lines).
		Msg("Quote request submitted")

	return sub, nil
}
