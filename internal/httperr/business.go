package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Classified failure codes and how they surface over HTTP. Anything not
// listed here is an infrastructure error and becomes a 500.
var statusByCode = map[string]int{
	"table_not_found":         http.StatusNotFound,
	"client_not_found":        http.StatusNotFound,
	"reservation_not_found":   http.StatusNotFound,
	"capacity_exceeded":       http.StatusBadRequest,
	"time_conflict":           http.StatusBadRequest,
	"invalid_duration":        http.StatusBadRequest,
	"invalid_start_time":      http.StatusBadRequest,
	"invalid_argument":        http.StatusBadRequest,
	"already_cancelled":       http.StatusBadRequest,
	"has_active_reservations": http.StatusBadRequest,
	"duplicate_email":         http.StatusBadRequest,
	"duplicate_table_number":  http.StatusBadRequest,
}

var messageByCode = map[string]string{
	"capacity_exceeded":       "Reservation exceeds table capacity.",
	"time_conflict":           "Time slot conflicts with an existing reservation.",
	"invalid_duration":        "Duration must be positive.",
	"invalid_start_time":      "Reservation start time must be in the future.",
	"already_cancelled":       "Reservation already cancelled.",
	"has_active_reservations": "Cannot delete table with active reservations.",
	"duplicate_email":         "A client with this email already exists.",
	"duplicate_table_number":  "A table with this number already exists.",
}

// WriteBusiness writes a classified failure and reports whether err was
// one. Callers fall through to Internal when it returns false.
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	status, ok := statusByCode[be.Code]
	if !ok {
		status = http.StatusBadRequest
	}

	Write(c, status, be.Code, messageByCode[be.Code])
	return true
}
