package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFields(t *testing.T) {
	assert.Nil(t, splitFields(""))
	assert.Equal(t, []string{"id", "nombre"}, splitFields(" id , nombre ,,"))
}

func TestConflictUnwrapsThroughTransactions(t *testing.T) {
	err := fmt.Errorf("tx: %w", &Conflict{Message: "no"})

	var conflict *Conflict
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "no", conflict.Error())
}
