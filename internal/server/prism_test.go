package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSplits(t *testing.T) {
	inputs := normalizeSplits([]prismSplitRequest{
		{DestinationID: "1", Percentage: 0.6},
		{DestinationID: "2", Percentage: 40},
		{DestinationID: "3", Percentage: 150},
		{DestinationID: "4", Percentage: 1},
	})

	assert.Equal(t, 0.6, inputs[0].Percentage)
	assert.Equal(t, 0.4, inputs[1].Percentage)
	assert.Equal(t, 1.0, inputs[2].Percentage)
	assert.Equal(t, 1.0, inputs[3].Percentage)
}
