// Package deploy uploads a built application to S3.
//
// The deployer walks the dist directory and puts every file under the
// configured bucket and key prefix, with content types and cache policies
// suitable for a static single-page application: HTML revalidates on
// every load, everything else is cached as an immutable asset.
package deploy
