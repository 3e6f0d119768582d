// Package util holds small generic helpers shared across polyglot packages.
package util
