package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentLogger_TagsLines(t *testing.T) {
	logs := useTestLogger(t)

	logger := componentLogger("task_store")
	logger.Info().Msg("loaded tasks")

	assert.Contains(t, logs.String(), `"component":"task_store"`)
	assert.Contains(t, logs.String(), `"message":"loaded tasks"`)
}
