package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("connection refused"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "connection refused", attr.Value.String())
}
