package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

// ErrNotFound is wrapped by APIError for 404 responses.
var ErrNotFound = errors.New("not found")

// ListResponse is one page of a resource listing. Total counts every record
// matching the query, not only those in Data.
type ListResponse struct {
	Data  []tablestate.Map `json:"data"`
	Total int              `json:"total"`
}

// APIError is returned for any status >= 400.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const maxErrorBody = 4 << 10

func newAPIError(path string, resp *http.Response) *APIError {
	apiErr := &APIError{Path: path, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}
