// Package resilience provides retry with exponential backoff for
// operations against flaky dependencies (remote repositories, external
// HTTP APIs).
package resilience
