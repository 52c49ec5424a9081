package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/handlers/battle/v1alpha1"
)

func TestDescribeErrorListsValidationFields(t *testing.T) {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("participant_id").Field("amount", "must be positive")

	err := describeError(v1alpha1.MethodApplyHealing, errors.ToGRPCError(vb.Build()))

	assert.Equal(t, "ApplyHealing rejected the request:\n  amount: must be positive\n  participant_id: is required", err.Error())
}

func TestDescribeErrorKeepsCode(t *testing.T) {
	err := describeError(v1alpha1.MethodGetBattle, status.Error(codes.NotFound, "battle battle_9 not found"))

	assert.Equal(t, "GetBattle failed: NOT_FOUND: battle battle_9 not found", err.Error())
	assert.True(t, errors.IsNotFound(err))
}
