package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxBodyBytes caps request bodies; issue bodies are a handful of short fields.
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// queryParams flattens the URL query to its first value per key.
func queryParams(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// requestBody is a decoded request body: every value as a raw string for
// coercion, plus the values exactly as they were sent.
type requestBody struct {
	fields map[string]string
	sent   map[string]any
}

// echoID is the body's _id as the client sent it, for the response.
func (b requestBody) echoID() any {
	return b.sent[string(domain.FieldID)]
}

// bodyParams reads a JSON object or a urlencoded form body. An empty body
// yields an empty requestBody.
func bodyParams(c *gin.Context) (requestBody, error) {
	empty := requestBody{fields: map[string]string{}, sent: map[string]any{}}
	if c.Request.Body == nil {
		return empty, nil
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return requestBody{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if len(data) == 0 {
		return empty, nil
	}

	if c.ContentType() == binding.MIMEPOSTForm {
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return requestBody{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		body := requestBody{fields: make(map[string]string, len(values)), sent: make(map[string]any, len(values))}
		for k, v := range values {
			if len(v) > 0 {
				body.fields[k] = v[0]
				body.sent[k] = v[0]
			}
		}
		return body, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return requestBody{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if dec.More() {
		return requestBody{}, fmt.Errorf("%w: trailing data", errInvalidBody)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	body := requestBody{fields: make(map[string]string, len(raw)), sent: raw}
	for k, v := range raw {
		body.fields[k] = stringify(v)
	}
	return body, nil
}

// stringify renders a decoded JSON value the way it would arrive in a form
// body, so coercion treats both encodings alike.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

// messageResponse is the payload of modify and remove outcomes. ID holds
// the _id exactly as the client sent it.
type messageResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	ID     any    `json:"_id"`
}
