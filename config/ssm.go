package config

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
)

// Loader reads configuration, fetching the optional SSM overlay from Region.
// An empty Region falls back to AWS_REGION, which lambda always sets.
type Loader struct {
	Region string

	svcFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// svc is used internally to assist stubs on ssm for testing
func (l *Loader) svc(p client.ConfigProvider) ssmiface.SSMAPI {
	if l.svcFunc != nil {
		return l.svcFunc(p)
	}

	return ssm.New(p)
}

func (l *Loader) region() string {
	if l.Region != "" {
		return l.Region
	}
	return os.Getenv("AWS_REGION")
}

// parameter returns the decrypted value of the named SSM parameter.
func (l *Loader) parameter(ctx context.Context, name string) (string, error) {
	s, err := session.NewSession(&aws.Config{
		Region: aws.String(l.region()),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed getting session")
	}

	out, err := l.svc(s).GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed getting ssm parameter %s", name)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.Errorf("ssm parameter %s has no value", name)
	}

	return aws.StringValue(out.Parameter.Value), nil
}
