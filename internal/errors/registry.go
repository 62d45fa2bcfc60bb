package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "No wayfinder.json found",
		Detail:   "The command needs a project configuration file and none was found in this directory or any parent.",
		DocURL:   "https://wayfinder.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid wayfinder.json",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://wayfinder.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid dev server port",
		Detail:   "The dev server port must be between 0 and 65535.",
		DocURL:   "https://wayfinder.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid routing mode",
		Detail:   "The routing mode must be \"history\" or \"hash\".",
		DocURL:   "https://wayfinder.dev/docs/errors/E103",
	},

	// ============================================
	// Build Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryBuild,
		Message:  "Build output directory not found",
		Detail:   "The configured dist directory does not exist. Build the application before serving or deploying it.",
		DocURL:   "https://wayfinder.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryBuild,
		Message:  "Missing index.html in build output",
		Detail:   "History-mode routing serves index.html for every application path, so the build output must contain one.",
		DocURL:   "https://wayfinder.dev/docs/errors/E201",
	},

	// ============================================
	// Deploy Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryDeploy,
		Message:  "No deploy bucket configured",
		Detail:   "Deploying requires a target S3 bucket in the deploy section of wayfinder.json.",
		DocURL:   "https://wayfinder.dev/docs/errors/E300",
	},
	"E301": {
		Category: CategoryDeploy,
		Message:  "Upload failed",
		Detail:   "One or more files could not be uploaded to the deploy bucket.",
		DocURL:   "https://wayfinder.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryDeploy,
		Message:  "AWS credentials not found",
		Detail:   "The AWS SDK could not resolve credentials from the environment, shared config, or instance metadata.",
		DocURL:   "https://wayfinder.dev/docs/errors/E302",
	},

	// ============================================
	// CLI Errors (E400-E419)
	// ============================================

	"E400": {
		Category: CategoryCLI,
		Message:  "Unknown command",
		Detail:   "The command is not recognized. Run 'wayfinder --help' for the list of commands.",
		DocURL:   "https://wayfinder.dev/docs/errors/E400",
	},
}
