package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrParse, ErrValidation, ErrCreation, ErrEdit, ErrWrite,
		ErrNotFound, ErrTransaction, ErrDuplicateFile, ErrBlankField, ErrBadFileName, ErrCardsDirMissing,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("save carl.vcf: %w", fmt.Errorf("validate: %w", ErrValidation))
	require.ErrorIs(t, err, ErrValidation)
	require.NotErrorIs(t, err, ErrWrite)
}
