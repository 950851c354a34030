package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/outletplanner/internal/cloudwriter"
	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

const (
	DestinationNone     = "none"
	DestinationConsole  = "console"
	DestinationJSON     = "json"
	DestinationKafka    = "kafka"
	DestinationPostgres = "postgres"
	DestinationParquet  = "parquet"
)

// New builds the destination named by config.OutputDestination. Parquet
// goes to the configured bucket when one is set, otherwise to disk.
func New(ctx context.Context, config *models.Config, logger *zap.Logger) (Destination, error) {
	switch config.OutputDestination {
	case DestinationConsole:
		return NewConsoleOutput(nil), nil
	case DestinationJSON:
		return NewJSONOutput(config.OutputPath, config.OutputFolder), nil
	case DestinationKafka:
		return NewKafkaOutput(config.KafkaBrokerList, config.SessionTimeoutMs, logger)
	case DestinationPostgres:
		return NewPostgresOutput(config.Database.DSN())
	case DestinationParquet:
		if config.CloudStorage.BucketName == "" {
			return NewParquetOutput(config.OutputPath, config.OutputFolder, logger), nil
		}
		var factory cloudwriter.CloudWriterFactory
		switch config.CloudStorage.Provider {
		case "s3":
			f, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			factory = f
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
		return NewCloudParquetOutput(factory, config.CloudStorage.BucketName, config.OutputFolder, logger), nil
	}
	return nil, fmt.Errorf("unknown output destination: %s", config.OutputDestination)
}
