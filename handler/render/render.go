package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"lending/core"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// OpError maps a protocol error to an http response, keeping the
// protocol error code in the body.
func OpError(w http.ResponseWriter, err error) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
		return
	}

	status := http.StatusBadRequest
	switch {
	case code == core.ErrBankNotFound || code == core.ErrUserNotFound || code == core.ErrPositionNotFound:
		status = http.StatusNotFound
	case code.IsOracleError():
		status = http.StatusServiceUnavailable
	case code.IsSolvencyError():
		status = http.StatusInternalServerError
	}

	Error(w, status, int(code), err)
}
