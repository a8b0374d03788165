package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// fromAPIErrorはリモートAPIのエラーをそのままのステータスで返す。
// APIエラー以外（ネットワーク断など）は502。
func fromAPIError(err error) error {
	if ae, ok := storeapi.AsAPIError(err); ok {
		return NewHTTPError(ae.Status, ae.Message)
	}
	return NewHTTPError(http.StatusBadGateway, "store api unavailable")
}
