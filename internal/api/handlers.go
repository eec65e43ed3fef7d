package api

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	imagepkg "github.com/kreeda/idcard/internal/image"
	"github.com/kreeda/idcard/internal/payment"
	"github.com/kreeda/idcard/internal/registration"
)

type Generator interface {
	HandleSubmission(ctx context.Context, sub registration.Submission) (registration.CardArtifact, error)
}

type QRSource interface {
	Available(c registration.Contest) bool
	QR(c registration.Contest, size int) ([]byte, string, error)
}

type RecordSource interface {
	Load() ([]registration.Record, error)
}

type Handler struct {
	gen      Generator
	qr       QRSource
	records  RecordSource
	logoPath string
}

func NewHandler(gen Generator, qr QRSource, records RecordSource, logoPath string) *Handler {
	return &Handler{gen: gen, qr: qr, records: records, logoPath: logoPath}
}

const defaultQRSize = 250

// submissionForm is the multipart body shared by POST /generate and
// POST /api/cards. The photo is read separately from the "photo" file field.
type submissionForm struct {
	Name             string    `form:"name"`
	DateOfBirth      time.Time `form:"date_of_birth" time_format:"2006-01-02"`
	Address          string    `form:"address"`
	Mobile           string    `form:"mobile"`
	Sport            string    `form:"sport"`
	Contest          string    `form:"contest"`
	PaymentConfirmed bool      `form:"payment_confirmed"`
}

// parseSubmission never fails: anything unreadable is left empty and the
// validator reports it as missing input.
func parseSubmission(c *gin.Context) registration.Submission {
	var f submissionForm
	if err := c.ShouldBind(&f); err != nil {
		zap.L().Debug("form bind failed", zap.Error(err))
	}
	sub := registration.Submission{
		Name:             f.Name,
		DateOfBirth:      f.DateOfBirth,
		Address:          f.Address,
		Mobile:           f.Mobile,
		Sport:            registration.Sport(f.Sport),
		Contest:          registration.Contest(f.Contest),
		PaymentConfirmed: f.PaymentConfirmed,
	}
	if fh, err := c.FormFile("photo"); err == nil {
		if data, err := readUpload(fh); err == nil && len(data) > 0 {
			sub.Photo = &registration.Photo{Filename: fh.Filename, Data: data}
		} else if err != nil {
			zap.L().Warn("reading uploaded photo failed", zap.Error(err))
		}
	}
	return sub
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// classify maps a HandleSubmission error to a status code, the message the
// user sees, and whether it is a warning rather than an error.
func classify(err error) (int, string, bool) {
	switch {
	case errors.Is(err, registration.ErrIncomplete):
		return http.StatusBadRequest, registration.IncompleteMessage, true
	case errors.Is(err, registration.ErrPaymentUnavailable):
		return http.StatusConflict, "QR code not found for selected contest.", false
	case errors.Is(err, imagepkg.ErrInvalidPhoto):
		return http.StatusBadRequest, "The uploaded photo could not be read as an image.", false
	case errors.Is(err, imagepkg.ErrTemplateNotFound):
		return http.StatusInternalServerError, "Background template image not found. Make sure 'id.png' is in the assets directory.", false
	default:
		return http.StatusInternalServerError, "Failed to generate the ID card.", false
	}
}

func logFailure(c *gin.Context, err error, status int) {
	if status >= http.StatusInternalServerError {
		zap.L().Error("generate failed", zap.String("path", c.FullPath()), zap.Error(err))
		return
	}
	zap.L().Info("generate rejected", zap.String("path", c.FullPath()), zap.Error(err))
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cardHandler generates a card from a multipart submission and returns it
// as a PNG attachment.
func (h *Handler) cardHandler(c *gin.Context) {
	art, err := h.gen.HandleSubmission(c.Request.Context(), parseSubmission(c))
	if err != nil {
		status, msg, _ := classify(err)
		logFailure(c, err, status)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+art.Filename+`"`)
	c.Data(http.StatusOK, art.ContentType, art.PNG)
}

// qrHandler serves the payment QR of a contest. size only applies to
// generated codes.
func (h *Handler) qrHandler(c *gin.Context) {
	contest, ok := registration.ContestBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown contest"})
		return
	}
	size := defaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, ct, err := h.qr.QR(contest, size)
	if err != nil {
		if errors.Is(err, payment.ErrQRNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "QR code not found for selected contest."})
			return
		}
		zap.L().Error("qr failed", zap.String("contest", string(contest)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, ct, b)
}

func (h *Handler) logoHandler(c *gin.Context) {
	c.File(h.logoPath)
}

func (h *Handler) listHandler(c *gin.Context) {
	h.writeRecords(c, registration.FilterOptions{
		Sports:    c.QueryArray("sport"),
		Contests:  c.QueryArray("contest"),
		FreeWords: c.Query("q"),
	})
}

func (h *Handler) filterHandler(c *gin.Context) {
	var opt registration.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.writeRecords(c, opt)
}

func (h *Handler) writeRecords(c *gin.Context, opt registration.FilterOptions) {
	all, err := h.records.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := registration.Filter(all, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "registrations": out})
}
