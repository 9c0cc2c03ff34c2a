package submit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnexpectedStatus is wrapped when the backend answers with a status
	// the contract does not declare.
	ErrUnexpectedStatus = errors.New("submit: unexpected response status")
	// ErrNoBaseURL is returned by New without a backend URL.
	ErrNoBaseURL = errors.New("submit: backend base URL is required")
)

// ContractError lists payload violations of the request contract. Fields are
// keyed by payload path ("titulo", "solicitantes/0/nombre"); Form carries
// violations not tied to a property.
type ContractError struct {
	Fields map[string][]string
	Form   []string
}

func (e *ContractError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths)+len(e.Form))
	for _, path := range paths {
		parts = append(parts, path+": "+strings.Join(e.Fields[path], "; "))
	}
	parts = append(parts, e.Form...)
	return "submit: payload violates contract: " + strings.Join(parts, ", ")
}

// Payload returns the violations as an error payload keyed by path, with
// form-level messages under "_form".
func (e *ContractError) Payload() map[string][]string {
	out := make(map[string][]string, len(e.Fields)+1)
	for path, messages := range e.Fields {
		out[path] = append([]string(nil), messages...)
	}
	if len(e.Form) > 0 {
		out["_form"] = append([]string(nil), e.Form...)
	}
	return out
}

// BackendError is a rejection reported through the response envelope.
// Fields holds per-path messages when the envelope data carries an "errors"
// object.
type BackendError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Payload returns the rejection as an error payload; the envelope message is
// form-level.
func (e *BackendError) Payload() map[string][]string {
	out := make(map[string][]string, len(e.Fields)+1)
	for path, messages := range e.Fields {
		out[path] = append([]string(nil), messages...)
	}
	if e.Message != "" {
		out["_form"] = append(out["_form"], e.Message)
	}
	return out
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("submit: backend rejected solicitud (%d): %s", e.Status, e.Message)
}
