// Package config loads storefront settings.
//
// Settings come from, in increasing priority:
//
//  1. Built-in defaults (the env-default struct tags)
//  2. An optional YAML file passed with --config
//  3. Variables from a .env file in the working directory
//  4. The process environment
//
// A .env entry never overrides a variable that is already set in the
// environment.
//
// Example storefront.yaml:
//
//	api:
//	  base_url: https://shop.example.com/api/v1
//	  timeout: 10s
//	  rate_limit: 5
//	log:
//	  level: debug
//	  format: json
//	output: yaml
//
// Run "storefront config" to list every variable with its description.
package config
