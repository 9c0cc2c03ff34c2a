package submit

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// CreatePath is the backend route that creates a solicitud.
const CreatePath = "/api/solicitudes/"

//go:embed contract/solicitudes.yaml
var defaultContract []byte

// Contract is the loaded OpenAPI description of the create operation.
type Contract struct {
	doc       *openapi3.T
	path      string
	request   *openapi3.Schema
	responses map[int]*openapi3.Schema
}

// DefaultContract loads the embedded contract.
func DefaultContract(ctx context.Context) (*Contract, error) {
	return LoadContract(ctx, defaultContract)
}

// LoadContract parses and validates an OpenAPI document and extracts the
// POST operation of CreatePath.
func LoadContract(ctx context.Context, data []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("submit: contract document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("submit: load contract: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("submit: validate contract: %w", err)
	}
	if doc.Paths == nil {
		return nil, errors.New("submit: contract does not contain any paths")
	}

	item := doc.Paths.Find(CreatePath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("submit: contract has no POST %s", CreatePath)
	}
	op := item.Post

	contract := &Contract{
		doc:       doc,
		path:      CreatePath,
		responses: make(map[int]*openapi3.Schema),
	}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		contract.request = jsonSchema(op.RequestBody.Value.Content)
	}
	if contract.request == nil {
		return nil, fmt.Errorf("submit: POST %s has no JSON request schema", CreatePath)
	}
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest} {
		if ref := op.Responses.Status(status); ref != nil && ref.Value != nil {
			if schema := jsonSchema(ref.Value.Content); schema != nil {
				contract.responses[status] = schema
			}
		}
	}
	return contract, nil
}

// Path reports the route of the create operation.
func (c *Contract) Path() string {
	return c.path
}

// Declares reports whether the contract documents status for the operation.
func (c *Contract) Declares(status int) bool {
	_, ok := c.responses[status]
	return ok
}

// ValidateRequest checks payload against the request schema. Violations are
// returned together as a *ContractError.
func (c *Contract) ValidateRequest(payload any) error {
	value, err := toJSONValue(payload)
	if err != nil {
		return err
	}
	if err := c.request.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return contractError(err)
	}
	return nil
}

// ValidateResponse checks a response body against the schema declared for
// status.
func (c *Contract) ValidateResponse(status int, body []byte) error {
	schema, ok := c.responses[status]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("submit: decode response: %w", err)
	}
	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("submit: response violates contract: %w", err)
	}
	return nil
}

func jsonSchema(content openapi3.Content) *openapi3.Schema {
	mt := content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

// toJSONValue round-trips v through encoding/json so the validator sees the
// generic maps and float64 numbers it expects.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("submit: encode payload: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("submit: decode payload: %w", err)
	}
	return value, nil
}

func contractError(err error) *ContractError {
	out := &ContractError{Fields: make(map[string][]string)}
	collectSchemaErrors(err, out)
	if len(out.Fields) == 0 {
		out.Fields = nil
	}
	return out
}

func collectSchemaErrors(err error, out *ContractError) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, out)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := strings.Join(schemaErr.JSONPointer(), "/")
		if path == "" {
			out.Form = append(out.Form, schemaErr.Reason)
			return
		}
		out.Fields[path] = append(out.Fields[path], schemaErr.Reason)
		return
	}
	out.Form = append(out.Form, err.Error())
}
