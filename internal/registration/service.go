package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	imagepkg "github.com/kreeda/idcard/internal/image"
	"github.com/kreeda/idcard/internal/metrics"
)

// ErrPaymentUnavailable means the chosen contest has no QR to pay with, so
// payment can never be confirmed for it.
var ErrPaymentUnavailable = errors.New("payment QR unavailable for contest")

const (
	CardFilename    = "id_card.png"
	CardContentType = "image/png"

	cardDateLayout = "02-01-2006"
)

type PhotoStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

type SubmissionLog interface {
	Append(ctx context.Context, r Record) error
}

type PaymentQR interface {
	Available(c Contest) bool
}

type Service struct {
	photos       PhotoStore
	log          SubmissionLog
	qr           PaymentQR
	compositor   *imagepkg.Compositor
	templatePath string
}

func NewService(photos PhotoStore, log SubmissionLog, qr PaymentQR, compositor *imagepkg.Compositor, templatePath string) *Service {
	return &Service{
		photos:       photos,
		log:          log,
		qr:           qr,
		compositor:   compositor,
		templatePath: templatePath,
	}
}

// HandleSubmission runs one Generate action: validate, load the template,
// decode the photo, save it, compose the card and append the log row, in
// that order. Nothing is written unless every check before the photo save
// passes.
func (s *Service) HandleSubmission(ctx context.Context, sub Submission) (CardArtifact, error) {
	if err := Validate(sub); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeIncomplete).Inc()
		return CardArtifact{}, err
	}
	if !s.qr.Available(sub.Contest) {
		metrics.Submissions.WithLabelValues(metrics.OutcomeNoQR).Inc()
		return CardArtifact{}, fmt.Errorf("%s: %w", sub.Contest, ErrPaymentUnavailable)
	}

	tpl, err := imagepkg.LoadTemplate(s.templatePath)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return CardArtifact{}, fmt.Errorf("HandleSubmission -> %w", err)
	}
	photo, err := imagepkg.DecodePhoto(sub.Photo.Data)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeBadPhoto).Inc()
		return CardArtifact{}, err
	}

	path, err := s.photos.Save(ctx, sub.Photo.Filename, sub.Photo.Data)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return CardArtifact{}, fmt.Errorf("HandleSubmission -> s.photos.Save -> %w", err)
	}

	start := time.Now()
	card := s.compositor.Compose(tpl, photo, CardValues(sub))
	png, err := imagepkg.EncodePNG(card)
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return CardArtifact{}, fmt.Errorf("HandleSubmission -> encode card -> %w", err)
	}
	metrics.RenderSeconds.Observe(time.Since(start).Seconds())

	rec := NewRecord(sub, path)
	if err := s.log.Append(ctx, rec); err != nil {
		// the photo stays on disk without a row
		zap.L().Error("log append failed after photo save", zap.String("photo", path), zap.Error(err))
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		return CardArtifact{}, fmt.Errorf("HandleSubmission -> s.log.Append -> %w", err)
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeAccepted).Inc()
	zap.L().Info("id card generated",
		zap.String("contest", rec.Contest),
		zap.String("sport", rec.Sport),
		zap.String("photo", path),
	)
	return CardArtifact{
		PNG:         png,
		Filename:    CardFilename,
		ContentType: CardContentType,
		Record:      rec,
	}, nil
}

// CardValues formats a submission the way it is printed on the card.
func CardValues(sub Submission) map[imagepkg.Field]string {
	return map[imagepkg.Field]string{
		imagepkg.FieldName:        strings.ToUpper(sub.Name),
		imagepkg.FieldDateOfBirth: sub.DateOfBirth.Format(cardDateLayout),
		imagepkg.FieldMobile:      sub.Mobile,
		imagepkg.FieldSport:       string(sub.Sport),
		imagepkg.FieldAddress:     sub.Address,
	}
}
