// Package models defines client-side data models used by the storefront CLI.
package models
