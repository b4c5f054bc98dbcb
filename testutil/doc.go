// Package testutil provides helpers shared by corekit package tests.
package testutil
