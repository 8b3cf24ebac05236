package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTypeName(t *testing.T) {
	valid := []string{"", "INTEGER", " text ", "VARCHAR(255)", "DOUBLE PRECISION", "DECIMAL(10,2)", "NUMERIC(10, 2)", "geometry"}
	for _, typeName := range valid {
		assert.NoError(t, ValidateTypeName("col", typeName), "type %q", typeName)
	}

	invalid := []string{
		"TEXT); CREATE TABLE pwned (a INTEGER); --",
		"TEXT -- comment",
		"INT DEFAULT 'x'",
		"VARCHAR(255",
		"(10)",
		"TEXT;",
	}
	for _, typeName := range invalid {
		assert.Error(t, ValidateTypeName("col", typeName), "type %q", typeName)
	}
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("table", "RandomData"))
	assert.NoError(t, ValidateIdentifier("table", "_rowseed_runs"))
	assert.Error(t, ValidateIdentifier("table", "Random Data"))
	assert.Error(t, ValidateIdentifier("table", `x" OR 1=1`))
}
