package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLangsvrCommandHasStdioFlag(t *testing.T) {
	cmd := NewLangsvrCommand()
	assert.Equal(t, "langsvr", cmd.Use)

	flag := cmd.Flags().Lookup("stdio")
	assert.NotNil(t, flag)
	assert.Equal(t, "true", flag.DefValue)
}
