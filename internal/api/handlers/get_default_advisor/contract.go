package get_default_advisor

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/integrations/profileservice"
)

type ProfileClient interface {
	GetDefaultAdvisor(ctx context.Context) (*profileservice.Profile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
