package logging

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))
	assert.Equal(t, "abc", RequestID(WithRequestID(ctx, "abc")))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	New(WithRequestID(context.Background(), "abc"), "issues").Errorf("update", "project=%q: %v", "apollo", errors.New("boom"))
	assert.Equal(t, "[issues] error request_id=abc op=update project=\"apollo\": boom\n", buf.String())

	buf.Reset()
	New(context.Background(), "cache").Warnf("find", "bypass")
	assert.Equal(t, "[cache] warn request_id=- op=find bypass\n", buf.String())
}
