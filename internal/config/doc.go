// Package config loads and validates wayfinder.json project configuration.
//
// A wayfinder.json lives at the project root and describes the dev server,
// the build output, the routing mode, and the deploy target:
//
//	{
//	  "name": "my-app",
//	  "routing": "history",
//	  "dev": {"port": 3000, "hotReload": true},
//	  "build": {"output": "dist", "basePath": "/"},
//	  "deploy": {"bucket": "my-app-site", "region": "us-east-1"}
//	}
//
// Commands locate the project root by walking up from the working
// directory until a wayfinder.json is found.
package config
