package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/model"
)

// formError is a validation message shown to the user as is.
type formError string

func (e formError) Error() string { return string(e) }

const (
	errQuantity formError = "Quantity must be a whole number of at least 1."
	errMoney    formError = "Enter a non-negative amount, for example 25.50."
)

// formValue returns the trimmed value of key.
func formValue(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// parseQuantity reads a positive whole number.
func parseQuantity(form url.Values, key string) (int, error) {
	n, err := strconv.Atoi(formValue(form, key))
	if err != nil || n < 1 {
		return 0, errQuantity
	}
	return n, nil
}

// parseMoney reads a non-negative decimal amount.
func parseMoney(form url.Values, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(formValue(form, key))
	if err != nil || d.IsNegative() {
		return decimal.Zero, errMoney
	}
	return d, nil
}

// submitError turns a failed submission into a banner message. Validation
// messages are shown verbatim; backend failures carry the backend's message
// when it sent one.
func submitError(action string, err error) string {
	var fe formError
	if errors.As(err, &fe) {
		return string(fe)
	}

	msg := "Could not " + action + "."
	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		msg += " " + reqErr.Message
	}
	return msg
}

// savedURL is where a successful submission redirects to. Filters the form
// was posted under carry over to the list.
func savedURL(r *http.Request, path, tab string) string {
	v := model.FilterFromQuery(r.URL.Query()).Values()
	if tab != "" {
		v.Set("tab", tab)
	}
	v.Set("saved", "1")
	return path + "?" + v.Encode()
}
