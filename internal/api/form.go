package api

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kreeda/idcard/internal/registration"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type formValues struct {
	Name        string
	DateOfBirth string
	Address     string
	Mobile      string
	Sport       string
	Contest     string
}

type contestOption struct {
	Name     string
	Slug     string
	Selected bool
	// Payable is false when no QR exists; the page then shows an error
	// instead of the payment checkbox.
	Payable bool
}

type formPage struct {
	Values   formValues
	Sports   []registration.Sport
	None     registration.Contest
	Contests []contestOption
	// Selected is the chosen real contest, nil for the none sentinel.
	Selected *contestOption
	Warning  string
	Error    string
}

func (h *Handler) newFormPage(v formValues) formPage {
	if v.Sport == "" {
		v.Sport = string(registration.SportCricket)
	}
	if v.Contest == "" {
		v.Contest = string(registration.ContestNone)
	}
	p := formPage{
		Values: v,
		Sports: registration.Sports,
		None:   registration.ContestNone,
	}
	for _, c := range registration.Contests {
		opt := contestOption{
			Name:     string(c),
			Slug:     c.Slug(),
			Selected: string(c) == v.Contest,
			Payable:  h.qr.Available(c),
		}
		p.Contests = append(p.Contests, opt)
		if opt.Selected {
			sel := opt
			p.Selected = &sel
		}
	}
	return p
}

// formHandler renders the registration form. Changing the contest reloads
// the page with the current values in the query string, so the payment
// block always reflects the selected contest.
func (h *Handler) formHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", h.newFormPage(formValues{
		Name:        c.Query("name"),
		DateOfBirth: c.Query("date_of_birth"),
		Address:     c.Query("address"),
		Mobile:      c.Query("mobile"),
		Sport:       c.Query("sport"),
		Contest:     c.Query("contest"),
	}))
}

type resultPage struct {
	Name     string
	Filename string
	Image    template.URL
	Message  string
}

// generateHandler is the form's Generate action.
func (h *Handler) generateHandler(c *gin.Context) {
	sub := parseSubmission(c)
	art, err := h.gen.HandleSubmission(c.Request.Context(), sub)
	if err != nil {
		status, msg, warning := classify(err)
		logFailure(c, err, status)

		page := h.newFormPage(formValues{
			Name:        sub.Name,
			DateOfBirth: c.PostForm("date_of_birth"),
			Address:     sub.Address,
			Mobile:      sub.Mobile,
			Sport:       string(sub.Sport),
			Contest:     string(sub.Contest),
		})
		if warning {
			page.Warning = msg
		} else {
			page.Error = msg
		}
		c.HTML(status, "form.html", page)
		return
	}

	c.HTML(http.StatusOK, "result.html", resultPage{
		Name:     art.Record.Name,
		Filename: art.Filename,
		Image:    template.URL("data:" + art.ContentType + ";base64," + base64.StdEncoding.EncodeToString(art.PNG)),
		Message:  "ID card created and saved successfully.",
	})
}
