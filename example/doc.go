// Package example shows the generated accessors for a small service
// registry protocol. The schema lives in schema.go, which is excluded from
// the build and only read by layoutc.
package example

//go:generate go run ../cmd/layoutc gen -o registry_gen.go schema.go
