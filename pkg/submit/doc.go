// Package submit hands an accepted wizard submission to the solicitudes
// backend. It assembles the request payload from the wizard values, checks it
// against the embedded OpenAPI contract of POST /api/solicitudes/ and decodes
// the backend's {"ok", "msg", "data"} envelope.
package submit
