package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	"github.com/wayfinder-dev/wayfinder/internal/deploy"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		region string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the built app to S3",
		Long: `Upload the build output directory to the configured S3 bucket.

Credentials come from the default AWS chain (environment, shared
config, instance metadata). HTML objects are uploaded with no-cache so
a deploy takes effect immediately; other assets get immutable caching.

Examples:
  wayfinder deploy
  wayfinder deploy --bucket=my-app-site --region=us-east-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), bucket, region, prefix)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket (default from wayfinder.json)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Bucket region (default from wayfinder.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix (default from wayfinder.json)")

	return cmd
}

func runDeploy(ctx context.Context, bucket, region, prefix string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if bucket != "" {
		cfg.Deploy.Bucket = bucket
	}
	if region != "" {
		cfg.Deploy.Region = region
	}
	if prefix != "" {
		cfg.Deploy.Prefix = prefix
	}

	printBanner()
	fmt.Println("  deploy")
	fmt.Println()

	client, err := deploy.NewClient(ctx, cfg.Deploy.Region)
	if err != nil {
		return err
	}
	d, err := deploy.New(client, cfg.Deploy, slog.Default())
	if err != nil {
		return err
	}

	info("Uploading %s to s3://%s/%s", cfg.OutputPath(), cfg.Deploy.Bucket, cfg.Deploy.Prefix)
	result, err := d.Deploy(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}

	success("Deployed %d files (%d bytes)", result.Uploaded, result.Bytes)
	return nil
}
