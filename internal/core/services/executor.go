package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// CommandStep performs one attempt of a command and returns the identifier
// of the created resource on success.
type CommandStep func(ctx context.Context) (createdID string, err error)

// Command is a state-mutating admin operation with a primary channel and an
// optional secondary channel used only when the primary is unreachable.
type Command struct {
	Name      string
	Primary   CommandStep
	Secondary CommandStep
}

// CommandExecutor runs commands through the primary channel first and falls
// back to the secondary channel only for availability failures. Channels are
// always attempted sequentially, never raced.
type CommandExecutor struct{}

func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

// Classify buckets a primary-channel failure. The decision is made once,
// from error kinds, and drives whether the secondary channel runs at all.
func Classify(err error) domain.Classification {
	if errors.Is(err, apperrors.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return domain.FallbackEligible
	}
	return domain.Terminal
}

// Execute runs cmd. A terminal primary failure is returned as-is and the
// secondary channel is never attempted for it. Path records the channel that
// satisfied the command, so every failed outcome carries PathNone. When both
// channels fail, the returned error names both causes so operators can see
// the full picture.
func (e *CommandExecutor) Execute(ctx context.Context, cmd Command) domain.CommandResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	createdID, primaryErr := cmd.Primary(ctx)
	if primaryErr == nil {
		logger.Info("command completed on primary channel", "command", cmd.Name, "created_id", createdID)
		return domain.CommandResult{Success: true, Path: domain.PathPrimary, CreatedID: createdID}
	}

	if Classify(primaryErr) == domain.Terminal {
		logger.Warn("command rejected on primary channel", "command", cmd.Name, "error", primaryErr)
		return domain.CommandResult{Success: false, Path: domain.PathNone, Err: primaryErr}
	}

	if cmd.Secondary == nil {
		logger.Error("primary channel unreachable and no secondary channel configured", "command", cmd.Name, "error", primaryErr)
		return domain.CommandResult{Success: false, Path: domain.PathNone, Err: primaryErr}
	}

	logger.Warn("primary channel unreachable, attempting secondary channel", "command", cmd.Name, "error", primaryErr)

	createdID, secondaryErr := cmd.Secondary(ctx)
	if secondaryErr == nil {
		logger.Info("command completed on secondary channel", "command", cmd.Name, "created_id", createdID)
		return domain.CommandResult{Success: true, Path: domain.PathSecondary, CreatedID: createdID}
	}

	logger.Error("command failed on both channels", "command", cmd.Name, "primary_error", primaryErr, "secondary_error", secondaryErr)
	composed := fmt.Errorf("primary unreachable; secondary failed: %w", secondaryErr)
	return domain.CommandResult{Success: false, Path: domain.PathNone, Err: composed}
}
