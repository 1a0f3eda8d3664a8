package dynamodb

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Connect carga la config AWS (env / shared config) y valida con un ListTables liviano.
// endpoint vacío => endpoint real de AWS; para DynamoDB Local usar http://localhost:8000.
func Connect(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if e := strings.TrimSpace(endpoint); e != "" {
			o.BaseEndpoint = aws.String(e)
		}
	})

	_, err = client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		return nil, err
	}

	return client, nil
}
