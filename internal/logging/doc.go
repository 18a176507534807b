// Package logging provides leveled logging for the photo catalog.
//
// The log level is controlled by the LOG_LEVEL environment variable
// (debug, info, warn, error) or the DEBUG variable (any truthy value
// enables debug logging). The default level is info.
package logging
