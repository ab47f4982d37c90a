package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	mazeerrors "github.com/fruitnuke/maze/pkg/errors"
)

// ErrResponse is the JSON body of every failed request.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	Code       string `json:"code,omitempty"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrFromError maps a pipeline error to its response. Codes the caller
// can fix map to 4xx.
func ErrFromError(err error) render.Renderer {
	code := mazeerrors.GetCode(err)
	status := statusFor(code)
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           string(code),
		ErrorText:      mazeerrors.UserMessage(err),
	}
}

func ErrNotFound(path string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		ErrorText:      "no route for " + path,
	}
}

func statusFor(code mazeerrors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == mazeerrors.ErrCodeBoundsExceeded:
		return http.StatusUnprocessableEntity
	case code == mazeerrors.ErrCodeOutOfMemory:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
