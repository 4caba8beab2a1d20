package race

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaceResult_Classification(t *testing.T) {
	success := RaceResult[string]{Name: "a", Status: StatusFinished, Value: "ok"}
	assert.True(t, success.IsSuccess())
	assert.False(t, success.IsFailure())
	assert.Empty(t, success.ErrorMessage())

	failure := RaceResult[string]{Name: "b", Status: StatusFinished, Err: errors.New("crashed")}
	assert.False(t, failure.IsSuccess())
	assert.True(t, failure.IsFailure())
	assert.Equal(t, "crashed", failure.ErrorMessage())

	disqualified := RaceResult[string]{Name: "c", Status: StatusDisqualified, Disqualified: true, FinishOrder: -1}
	assert.False(t, disqualified.IsSuccess())
	assert.False(t, disqualified.IsFailure())
}
