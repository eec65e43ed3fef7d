package registration

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// ErrIncomplete is returned for any missing input. It does not say which
// field failed; callers show IncompleteMessage.
var ErrIncomplete = errors.New("incomplete submission")

const IncompleteMessage = "Please complete all fields, select a contest, and confirm your payment."

var photoPresent = validation.By(func(value interface{}) error {
	p, _ := value.(*Photo)
	if p == nil || len(p.Data) == 0 {
		return errors.New("no photo uploaded")
	}
	return nil
})

// Validate gates everything with side effects: it returns nil only when
// every field is present, a real contest is chosen and payment is confirmed.
func Validate(s Submission) error {
	err := validation.ValidateStruct(
		&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.DateOfBirth, validation.Required),
		validation.Field(&s.Address, validation.Required),
		validation.Field(&s.Mobile, validation.Required),
		validation.Field(&s.Sport, validation.Required, validation.In(sportValues()...)),
		validation.Field(&s.Photo, photoPresent),
		validation.Field(&s.Contest, validation.Required, validation.In(contestValues()...)),
		validation.Field(&s.PaymentConfirmed, validation.Required),
	)
	if err == nil {
		return nil
	}

	var fields []string
	var errs validation.Errors
	if errors.As(err, &errs) {
		for k := range errs {
			fields = append(fields, k)
		}
		sort.Strings(fields)
	}
	zap.L().Debug("submission rejected", zap.Strings("fields", fields))
	return ErrIncomplete
}

func sportValues() []interface{} {
	out := make([]interface{}, 0, len(Sports))
	for _, s := range Sports {
		out = append(out, s)
	}
	return out
}

func contestValues() []interface{} {
	out := make([]interface{}, 0, len(Contests))
	for _, c := range Contests {
		out = append(out, c)
	}
	return out
}
