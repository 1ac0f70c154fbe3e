package aws

import (
	"context"

	"timesheet.service/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rs/zerolog/log"
)

// NewAWSConfig creates a new AWS configuration, pointing to LocalStack in local development.
func NewAWSConfig(ctx context.Context, appConfig config.Config) (aws.Config, error) {
	if appConfig.IsLocalDev {
		log.Info().Str("endpoint", appConfig.AWSEndpoint).Msg("Local development mode detected. Routing AWS calls to LocalStack.")
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if appConfig.AWSEndpoint != "" {
				return aws.Endpoint{
					URL:           appConfig.AWSEndpoint,
					SigningRegion: region,
					PartitionID:   "aws",
				}, nil
			}
			// Fall back to the SDK's own endpoint resolution.
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})

		return awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(appConfig.AWSRegion),
			awsConfig.WithEndpointResolverWithOptions(customResolver),
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
	}

	// Credentials come from the environment (e.g. IAM role for service accounts).
	log.Info().Str("region", appConfig.AWSRegion).Msg("Using standard AWS credential chain.")
	return awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(appConfig.AWSRegion))
}
