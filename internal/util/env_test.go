package util_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github/chapool/go-mock-wallet/internal/util"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MOCKWALLET_TEST_ENV", "value")
	assert.Equal(t, "value", util.GetEnv("MOCKWALLET_TEST_ENV", "default"))
	assert.Equal(t, "default", util.GetEnv("MOCKWALLET_TEST_ENV_UNSET", "default"))
}

func TestGetEnvAsStringArr(t *testing.T) {
	t.Setenv("MOCKWALLET_TEST_ARR", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, util.GetEnvAsStringArr("MOCKWALLET_TEST_ARR", nil))
	assert.Equal(t, []string{"x"}, util.GetEnvAsStringArr("MOCKWALLET_TEST_ARR_UNSET", []string{"x"}))

	t.Setenv("MOCKWALLET_TEST_ARR_SEP", "a;b")
	assert.Equal(t, []string{"a", "b"}, util.GetEnvAsStringArr("MOCKWALLET_TEST_ARR_SEP", nil, ";"))
}

func TestGetEnvAsBoolAndInt(t *testing.T) {
	t.Setenv("MOCKWALLET_TEST_BOOL", "true")
	t.Setenv("MOCKWALLET_TEST_INT", "42")
	t.Setenv("MOCKWALLET_TEST_INT_BROKEN", "forty-two")

	assert.True(t, util.GetEnvAsBool("MOCKWALLET_TEST_BOOL", false))
	assert.Equal(t, 42, util.GetEnvAsInt("MOCKWALLET_TEST_INT", 0))
	assert.Equal(t, 7, util.GetEnvAsInt("MOCKWALLET_TEST_INT_BROKEN", 7))
}

func TestGetEnvEnum(t *testing.T) {
	t.Setenv("MOCKWALLET_TEST_ENUM", "testnet")
	allowed := []string{"devnet", "testnet"}
	assert.Equal(t, "testnet", util.GetEnvEnum("MOCKWALLET_TEST_ENUM", "devnet", allowed))

	t.Setenv("MOCKWALLET_TEST_ENUM", "moon")
	assert.Equal(t, "devnet", util.GetEnvEnum("MOCKWALLET_TEST_ENUM", "devnet", allowed))
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, util.LogLevelFromString("warn", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, util.LogLevelFromString("nope", zerolog.InfoLevel))
}

func TestLogFromContext(t *testing.T) {
	ctx := t.Context()
	assert.NotEqual(t, zerolog.Disabled, util.LogFromContext(ctx).GetLevel())

	ctx = util.DisableLogger(ctx, true)
	assert.Equal(t, zerolog.Disabled, util.LogFromContext(ctx).GetLevel())
}
