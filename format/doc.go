// Package format names the serialization formats of IR documents.
package format
