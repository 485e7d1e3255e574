// Package profile handles launch profiles — optional launch.yaml files that
// bundle a launch configuration (entry point, port, interpreter, requirements
// policy) so teams can check one in next to the app. Profiles are validated
// against an embedded JSON Schema before use.
package profile
