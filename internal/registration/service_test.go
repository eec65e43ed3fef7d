package registration_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/kreeda/idcard/internal/image"
	"github.com/kreeda/idcard/internal/registration"
	"github.com/kreeda/idcard/internal/storage"
)

type qrStub map[registration.Contest]bool

func (q qrStub) Available(c registration.Contest) bool { return q[c] }

type env struct {
	root     string
	photoDir string
	logPath  string
	template string
	log      *storage.CSVLog
	svc      *registration.Service
	photoPNG []byte
}

func newEnv(t *testing.T, qr qrStub) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		root:     root,
		photoDir: filepath.Join(root, "photos"),
		logPath:  filepath.Join(root, "id_card_data.csv"),
		template: filepath.Join(root, "id.png"),
	}
	require.NoError(t, imaging.Save(imaging.New(400, 550, color.NRGBA{R: 240, G: 240, B: 240, A: 255}), e.template))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(50, 50, color.NRGBA{R: 20, G: 90, B: 200, A: 255})))
	e.photoPNG = buf.Bytes()

	photos, err := storage.NewPhotoDir(e.photoDir)
	require.NoError(t, err)
	e.log, err = storage.OpenCSVLog(e.logPath)
	require.NoError(t, err)

	bold := imagepkg.LoadFont(filepath.Join(root, "arialbd.ttf"), 20)
	regular := imagepkg.LoadFont(filepath.Join(root, "arial.ttf"), 16)
	comp := imagepkg.NewCompositor(imagepkg.DefaultLayout(), bold, regular)

	e.svc = registration.NewService(photos, e.log, qr, comp, e.template)
	return e
}

func (e *env) johnDoe() registration.Submission {
	return registration.Submission{
		Name:             "JOHN DOE",
		DateOfBirth:      time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC),
		Address:          "12 Main St",
		Mobile:           "5551234",
		Sport:            registration.SportCricket,
		Contest:          registration.ContestCricketLeague,
		Photo:            &registration.Photo{Filename: "me.png", Data: e.photoPNG},
		PaymentConfirmed: true,
	}
}

func (e *env) photoFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.photoDir)
	require.NoError(t, err)
	out := []string{}
	for _, en := range entries {
		out = append(out, en.Name())
	}
	return out
}

func (e *env) logLines(t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(e.logPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

var allQR = qrStub{
	registration.ContestFootballChampionship: true,
	registration.ContestVolleyballChallenge:  true,
	registration.ContestCricketLeague:        true,
}

func TestHandleSubmissionJohnDoe(t *testing.T) {
	e := newEnv(t, allQR)

	art, err := e.svc.HandleSubmission(context.Background(), e.johnDoe())
	require.NoError(t, err)

	assert.Equal(t, "id_card.png", art.Filename)
	assert.Equal(t, "image/png", art.ContentType)
	img, err := png.Decode(bytes.NewReader(art.PNG))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 550), img.Bounds())

	files := e.photoFiles(t)
	require.Len(t, files, 1)
	assert.Regexp(t, `^[0-9a-f]{32}_me\.png$`, files[0])

	lines := e.logLines(t)
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Date of Birth,Address,Mobile Number,Sport,Contest,Photo", lines[0])
	rel := strings.TrimPrefix(lines[1], "JOHN DOE,2000-01-15,12 Main St,5551234,Cricket,Cricket League,"+e.root+string(filepath.Separator))
	assert.Regexp(t, regexp.MustCompile(`^photos/[0-9a-f]{32}_me\.png$`), filepath.ToSlash(rel))

	// the logged path reads back as the uploaded bytes
	saved, err := os.ReadFile(art.Record.Photo)
	require.NoError(t, err)
	assert.Equal(t, e.photoPNG, saved)
	_, err = imagepkg.DecodePhoto(saved)
	assert.NoError(t, err)
}

func TestHandleSubmissionIncompleteWritesNothing(t *testing.T) {
	e := newEnv(t, allQR)

	sub := e.johnDoe()
	sub.PaymentConfirmed = false
	_, err := e.svc.HandleSubmission(context.Background(), sub)
	assert.ErrorIs(t, err, registration.ErrIncomplete)

	sub = e.johnDoe()
	sub.Contest = registration.ContestNone
	_, err = e.svc.HandleSubmission(context.Background(), sub)
	assert.ErrorIs(t, err, registration.ErrIncomplete)

	sub = e.johnDoe()
	sub.Photo = nil
	_, err = e.svc.HandleSubmission(context.Background(), sub)
	assert.ErrorIs(t, err, registration.ErrIncomplete)

	assert.Empty(t, e.photoFiles(t))
	assert.Len(t, e.logLines(t), 1)
}

func TestHandleSubmissionWithoutQR(t *testing.T) {
	e := newEnv(t, qrStub{registration.ContestFootballChampionship: true})

	_, err := e.svc.HandleSubmission(context.Background(), e.johnDoe())
	assert.ErrorIs(t, err, registration.ErrPaymentUnavailable)
	assert.Empty(t, e.photoFiles(t))
	assert.Len(t, e.logLines(t), 1)
}

func TestHandleSubmissionMissingTemplate(t *testing.T) {
	e := newEnv(t, allQR)
	require.NoError(t, os.Remove(e.template))

	_, err := e.svc.HandleSubmission(context.Background(), e.johnDoe())
	assert.ErrorIs(t, err, imagepkg.ErrTemplateNotFound)
	assert.Empty(t, e.photoFiles(t))
	assert.Len(t, e.logLines(t), 1)
}

func TestHandleSubmissionInvalidPhoto(t *testing.T) {
	e := newEnv(t, allQR)

	sub := e.johnDoe()
	sub.Photo = &registration.Photo{Filename: "me.png", Data: []byte("definitely not an image")}
	_, err := e.svc.HandleSubmission(context.Background(), sub)
	assert.ErrorIs(t, err, imagepkg.ErrInvalidPhoto)
	assert.Empty(t, e.photoFiles(t))
	assert.Len(t, e.logLines(t), 1)
}

func TestHandleSubmissionAccumulates(t *testing.T) {
	e := newEnv(t, allQR)

	for i := 0; i < 3; i++ {
		_, err := e.svc.HandleSubmission(context.Background(), e.johnDoe())
		require.NoError(t, err)
	}
	// reopening the log must not add another header
	_, err := storage.OpenCSVLog(e.logPath)
	require.NoError(t, err)

	assert.Len(t, e.photoFiles(t), 3)
	lines := e.logLines(t)
	assert.Len(t, lines, 4)
	assert.Equal(t, 1, strings.Count(strings.Join(lines, "\n"), "Name,Date of Birth"))

	records, err := e.log.Load()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestCardValues(t *testing.T) {
	sub := registration.Submission{
		Name:        "jane smith",
		DateOfBirth: time.Date(1999, 12, 3, 0, 0, 0, 0, time.UTC),
		Address:     "7 Park Lane",
		Mobile:      "123",
		Sport:       registration.SportVolleyball,
	}
	assert.Equal(t, map[imagepkg.Field]string{
		imagepkg.FieldName:        "JANE SMITH",
		imagepkg.FieldDateOfBirth: "03-12-1999",
		imagepkg.FieldMobile:      "123",
		imagepkg.FieldSport:       "Volleyball",
		imagepkg.FieldAddress:     "7 Park Lane",
	}, registration.CardValues(sub))
}
