package lambdautils

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaMetaData stores details about the current lambda invocation.
type LambdaMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	Context         *lambdacontext.LambdaContext
}

// GetLambdaMetaData returns MetaData extracted from the current lambda context.
// Outside of lambda the fields are empty and Context is nil.
func GetLambdaMetaData(ctx context.Context) LambdaMetaData {
	lm := LambdaMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	lm.Context, _ = lambdacontext.FromContext(ctx)
	return lm
}

// RequestID returns the aws request id of the invocation, if any.
func (lm LambdaMetaData) RequestID() string {
	if lm.Context == nil {
		return ""
	}
	return lm.Context.AwsRequestID
}

// LogAttrs returns the non-empty metadata as slog attributes.
func (lm LambdaMetaData) LogAttrs() []any {
	var attrs []any

	if lm.FunctionName != "" {
		attrs = append(attrs, slog.String("function", lm.FunctionName))
	}
	if lm.FunctionVersion != "" {
		attrs = append(attrs, slog.String("function_version", lm.FunctionVersion))
	}
	if id := lm.RequestID(); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}

	return attrs
}

// Logger returns base enriched with the invocation metadata found in ctx.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	attrs := GetLambdaMetaData(ctx).LogAttrs()
	if len(attrs) == 0 {
		return base
	}
	return base.With(attrs...)
}
