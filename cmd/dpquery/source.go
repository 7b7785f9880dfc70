package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/dataprovider/blobstore"
	minioblob "github.com/hupe1980/dataprovider/blobstore/minio"
	"github.com/hupe1980/dataprovider/blobstore/s3"
	"github.com/hupe1980/dataprovider/record"
	"github.com/hupe1980/dataprovider/resource"
	"github.com/hupe1980/dataprovider/source"
	"github.com/hupe1980/dataprovider/source/dynamo"
	"github.com/hupe1980/dataprovider/source/pgsource"
	"github.com/hupe1980/dataprovider/source/sqlsource"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type sourceFlags struct {
	dir      string
	s3Bucket string
	s3Prefix string
	prefix   string

	pgURL  string
	sqlite string
	query  string

	ddbTable string
	region   string

	minioEndpoint string
	minioBucket   string
	minioPrefix   string
	minioSecure   bool

	maxLoads int64
	ioLimit  int64
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dir, "dir", "", "local snapshot directory")
	fs.StringVar(&f.s3Bucket, "s3-bucket", "", "S3 bucket holding snapshots")
	fs.StringVar(&f.s3Prefix, "s3-prefix", "", "root prefix inside the S3 bucket")
	fs.StringVar(&f.prefix, "prefix", "", "snapshot name prefix to load")
	fs.StringVar(&f.pgURL, "pg-url", "", "PostgreSQL connection string")
	fs.StringVar(&f.sqlite, "sqlite", "", "SQLite database file")
	fs.StringVar(&f.query, "sql", "", "SQL query for --pg-url or --sqlite")
	fs.StringVar(&f.ddbTable, "ddb-table", "", "DynamoDB table to scan")
	fs.StringVar(&f.region, "region", "", "AWS region (default from environment)")
	fs.StringVar(&f.minioEndpoint, "minio-endpoint", "", "MinIO endpoint host:port (credentials from MINIO_ACCESS_KEY/MINIO_SECRET_KEY)")
	fs.StringVar(&f.minioBucket, "minio-bucket", "", "MinIO bucket holding snapshots")
	fs.StringVar(&f.minioPrefix, "minio-prefix", "", "root prefix inside the MinIO bucket")
	fs.BoolVar(&f.minioSecure, "minio-secure", false, "use HTTPS for MinIO")
	fs.Int64Var(&f.maxLoads, "max-loads", 4, "maximum snapshots loaded concurrently")
	fs.Int64Var(&f.ioLimit, "io-limit", 0, "snapshot read limit in bytes per second (0 = unlimited)")
}

// name is the store name used in logs and audit events.
func (f *sourceFlags) name() string {
	switch {
	case f.ddbTable != "":
		return f.ddbTable
	case f.prefix != "":
		return f.prefix
	default:
		return "records"
	}
}

func (f *sourceFlags) load(ctx context.Context, logger *slog.Logger) ([]record.Document, error) {
	switch {
	case f.dir != "" || f.s3Bucket != "" || f.minioEndpoint != "":
		store, err := f.blobStore(ctx)
		if err != nil {
			return nil, err
		}
		rc := resource.NewController(resource.Config{
			MaxConcurrentLoads: f.maxLoads,
			IOLimitBytesPerSec: f.ioLimit,
		})
		return source.NewLoader(store, source.WithController(rc), source.WithLogger(logger)).LoadPrefix(ctx, f.prefix)
	case f.pgURL != "":
		if f.query == "" {
			return nil, errors.New("--pg-url requires --sql")
		}
		pool, err := pgxpool.New(ctx, f.pgURL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return pgsource.Load(ctx, pool, f.query)
	case f.sqlite != "":
		if f.query == "" {
			return nil, errors.New("--sqlite requires --sql")
		}
		db, err := sql.Open("sqlite", f.sqlite)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqlsource.Load(ctx, db, f.query)
	case f.ddbTable != "":
		cfg, err := f.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		return dynamo.Load(ctx, dynamodb.NewFromConfig(cfg), f.ddbTable)
	default:
		return nil, errors.New("one of --dir, --s3-bucket, --minio-endpoint, --pg-url, --sqlite or --ddb-table is required")
	}
}

func (f *sourceFlags) blobStore(ctx context.Context) (blobstore.BlobStore, error) {
	if f.dir != "" {
		return blobstore.NewLocalStore(f.dir), nil
	}
	if f.minioEndpoint != "" {
		store, err := minioblob.New(minioblob.Config{
			Endpoint:  f.minioEndpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Region:    f.region,
			Secure:    f.minioSecure,
			Bucket:    f.minioBucket,
			Prefix:    f.minioPrefix,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	cfg, err := f.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewStore(awss3.NewFromConfig(cfg), f.s3Bucket, f.s3Prefix), nil
}

func (f *sourceFlags) awsConfig(ctx context.Context) (aws.Config, error) {
	var optFns []func(*config.LoadOptions) error
	if f.region != "" {
		optFns = append(optFns, config.WithRegion(f.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}
