package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/go-mock-wallet/internal/util"
)

func TestFalseIfNil(t *testing.T) {
	b := true
	assert.True(t, util.FalseIfNil(&b))
	b = false
	assert.False(t, util.FalseIfNil(&b))
	assert.False(t, util.FalseIfNil(nil))
}

func TestTrueIfNil(t *testing.T) {
	b := false
	assert.False(t, util.TrueIfNil(&b))
	b = true
	assert.True(t, util.TrueIfNil(&b))
	assert.True(t, util.TrueIfNil(nil))
}
